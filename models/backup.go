package models

// BackupDocument is the combined export/import wire format covering all
// persisted state.
type BackupDocument struct {
	Tickets   []Ticket       `json:"tickets"`
	Historico []HistoryEntry `json:"historico"`
	Config    RaffleConfig   `json:"config"`
}
