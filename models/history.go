package models

import "time"

// Winner is a snapshot of the drawn ticket's buyer taken at draw time.
// Re-assigning the ticket later must not change past entries.
type Winner struct {
	Nome    string `json:"nome"`
	Contato string `json:"contato"`
}

// HistoryEntry records one completed draw. The json field names are the
// backup wire format and must not change.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Data           time.Time `json:"data"`
	NumeroSorteado int       `json:"numeroSorteado"`
	Ganhador       *Winner   `json:"ganhador"`
}
