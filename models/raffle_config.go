package models

// RaffleConfig is the persisted raffle configuration. Changing the pool
// size goes through the engine and forces a pool reset.
type RaffleConfig struct {
	QuantidadeNumeros int `json:"quantidadeNumeros"`
}
