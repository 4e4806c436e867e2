package services

import (
	"encoding/json"
	"errors"

	"github.com/sortegrande/raffle-backend/models"
	"github.com/sortegrande/raffle-backend/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage keys, one per persisted kind. These match the keys the raffle
// has always used, so old backups keep importing cleanly.
const (
	StateKeyTickets   = "sg_tickets"
	StateKeyHistorico = "sg_historico"
	StateKeyConfig    = "sg_config"
)

// Store is the durable mirror of {pool, history, configuration}. The
// in-memory state owned by the engine is authoritative within a session;
// the store is best effort except for import, which is transactional.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save mirrors value under key. A storage failure is logged as a warning
// and swallowed: the operation that triggered the save still succeeds.
func (s *Store) Save(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Warnf("storage: marshal %s: %v", key, err)
		return
	}

	record := models.StateRecord{Key: key, Value: datatypes.JSON(payload)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		logger.Warnf("storage: save %s: %v", key, err)
	}
}

// Load deserializes the blob stored under key into out. Returns
// ErrStateNotFound when nothing was ever saved under key, so callers can
// tell "absent" apart from an empty value.
func (s *Store) Load(key string, out any) error {
	var record models.StateRecord
	if err := s.db.First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStateNotFound
		}
		return err
	}
	return json.Unmarshal(record.Value, out)
}

// Clear removes the blob stored under key, if any.
func (s *Store) Clear(key string) {
	if err := s.db.Delete(&models.StateRecord{}, "key = ?", key).Error; err != nil {
		logger.Warnf("storage: clear %s: %v", key, err)
	}
}

// ClearAll removes every persisted kind.
func (s *Store) ClearAll() {
	keys := []string{StateKeyTickets, StateKeyHistorico, StateKeyConfig}
	if err := s.db.Delete(&models.StateRecord{}, "key IN ?", keys).Error; err != nil {
		logger.Warnf("storage: clear all: %v", err)
	}
}

// ReplaceAll writes the three backup kinds in a single transaction, so a
// failed import can never leave a partial mix of old and new state.
func (s *Store) ReplaceAll(doc *models.BackupDocument) error {
	values := map[string]any{
		StateKeyTickets:   doc.Tickets,
		StateKeyHistorico: doc.Historico,
		StateKeyConfig:    doc.Config,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			payload, err := json.Marshal(value)
			if err != nil {
				return err
			}
			record := models.StateRecord{Key: key, Value: datatypes.JSON(payload)}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&record).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
