package services

import (
	"testing"

	"github.com/sortegrande/raffle-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveLoad(t *testing.T) {
	store := NewStore(newTestDB(t))

	saved := models.RaffleConfig{QuantidadeNumeros: 42}
	store.Save(StateKeyConfig, saved)

	var loaded models.RaffleConfig
	require.NoError(t, store.Load(StateKeyConfig, &loaded))
	assert.Equal(t, saved, loaded)
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := NewStore(newTestDB(t))

	store.Save(StateKeyConfig, models.RaffleConfig{QuantidadeNumeros: 10})
	store.Save(StateKeyConfig, models.RaffleConfig{QuantidadeNumeros: 20})

	var loaded models.RaffleConfig
	require.NoError(t, store.Load(StateKeyConfig, &loaded))
	assert.Equal(t, 20, loaded.QuantidadeNumeros)
}

func TestStoreLoadAbsentKey(t *testing.T) {
	store := NewStore(newTestDB(t))

	var tickets []models.Ticket
	err := store.Load(StateKeyTickets, &tickets)
	assert.ErrorIs(t, err, ErrStateNotFound, "absent must be distinguishable from empty")
}

func TestStoreClear(t *testing.T) {
	store := NewStore(newTestDB(t))

	store.Save(StateKeyHistorico, []models.HistoryEntry{})
	store.Clear(StateKeyHistorico)

	var historico []models.HistoryEntry
	assert.ErrorIs(t, store.Load(StateKeyHistorico, &historico), ErrStateNotFound)
}

func TestStoreClearAll(t *testing.T) {
	store := NewStore(newTestDB(t))

	store.Save(StateKeyTickets, []models.Ticket{{Number: 1}})
	store.Save(StateKeyHistorico, []models.HistoryEntry{})
	store.Save(StateKeyConfig, models.RaffleConfig{QuantidadeNumeros: 10})

	store.ClearAll()

	for _, key := range []string{StateKeyTickets, StateKeyHistorico, StateKeyConfig} {
		var raw any
		assert.ErrorIs(t, store.Load(key, &raw), ErrStateNotFound, key)
	}
}

func TestStoreReplaceAll(t *testing.T) {
	store := NewStore(newTestDB(t))

	// Pre-existing state that must be fully replaced.
	store.Save(StateKeyConfig, models.RaffleConfig{QuantidadeNumeros: 10})

	doc := &models.BackupDocument{
		Tickets:   []models.Ticket{{Number: 1, Sold: true, Buyer: &models.Buyer{ID: "b1", Name: "Ana", Contact: "ana@x.com"}}},
		Historico: []models.HistoryEntry{},
		Config:    models.RaffleConfig{QuantidadeNumeros: 1},
	}
	require.NoError(t, store.ReplaceAll(doc))

	var tickets []models.Ticket
	require.NoError(t, store.Load(StateKeyTickets, &tickets))
	require.Len(t, tickets, 1)
	assert.Equal(t, "Ana", tickets[0].Buyer.Name)

	var config models.RaffleConfig
	require.NoError(t, store.Load(StateKeyConfig, &config))
	assert.Equal(t, 1, config.QuantidadeNumeros)

	var historico []models.HistoryEntry
	require.NoError(t, store.Load(StateKeyHistorico, &historico))
	assert.Empty(t, historico)
}

func TestStoreSaveSwallowsFailure(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// Must not panic or return; the failure is logged and swallowed.
	store.Save(StateKeyConfig, models.RaffleConfig{QuantidadeNumeros: 10})

	var loaded models.RaffleConfig
	assert.Error(t, store.Load(StateKeyConfig, &loaded))
}
