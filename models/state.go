package models

import (
	"time"

	"gorm.io/datatypes"
)

// StateRecord is one persisted blob. The raffle keeps three of them
// (ticket pool, draw history, configuration), mirroring the in-memory
// state after every mutation.
type StateRecord struct {
	Key       string         `gorm:"primaryKey" json:"key"`
	Value     datatypes.JSON `gorm:"type:json" json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}
