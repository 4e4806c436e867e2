package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sortegrande/raffle-backend/models"
	"github.com/sortegrande/raffle-backend/utils/logger"
	"github.com/sortegrande/raffle-backend/validators"
)

// Engine draw states. Only one draw may be in flight: a second Draw while
// the spin window is open fails with ErrDrawInProgress, and so does any
// pool mutation, since the pool must not change between the precondition
// check and the pick.
const (
	StatusIdle    = "idle"
	StatusDrawing = "drawing"
)

// DefaultPoolSize is used when no configuration has ever been persisted.
const DefaultPoolSize = 100

// DrawResult is what the operator sees when a draw resolves. It is
// transient display state: a pool reset or resize clears it without
// touching the history ledger.
type DrawResult struct {
	NumeroSorteado int            `json:"numeroSorteado"`
	Ganhador       *models.Winner `json:"ganhador"`
}

// BoardState is the snapshot consumed by the ticket grid and the
// realtime hub.
type BoardState struct {
	Status            string          `json:"status"`
	QuantidadeNumeros int             `json:"quantidadeNumeros"`
	Vendidos          int             `json:"vendidos"`
	Tickets           []models.Ticket `json:"tickets"`
	UltimoResultado   *DrawResult     `json:"ultimoResultado"`
}

// RaffleEngine owns the ticket pool, the configuration and the draw
// history. All mutation goes through its methods so the pool invariants
// (contiguous numbering, sold iff buyer present, size == configuration)
// hold at a single choke point. Every mutation is mirrored to the store
// after it is applied in memory.
type RaffleEngine struct {
	mu         sync.RWMutex
	tickets    []models.Ticket
	config     models.RaffleConfig
	historico  []models.HistoryEntry
	status     string
	lastResult *DrawResult

	store    *Store
	confirms *ConfirmationBroker

	// Non-cryptographic on purpose: good enough for a casual raffle.
	// Seedable so tests can fix the sequence; the seed is not logged.
	rng *rand.Rand

	// Presentation pacing only. The pick itself is instantaneous at the
	// end of the window. Zero in tests.
	spinDelay time.Duration

	notifier func(event string)
}

func NewRaffleEngine(store *Store, confirms *ConfirmationBroker, spinDelay time.Duration) *RaffleEngine {
	return &RaffleEngine{
		status:    StatusIdle,
		store:     store,
		confirms:  confirms,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		spinDelay: spinDelay,
	}
}

// SetNotifier registers the callback invoked after every state change.
// The callback runs without the engine lock held.
func (e *RaffleEngine) SetNotifier(fn func(event string)) {
	e.notifier = fn
}

func (e *RaffleEngine) notify(event string) {
	if e.notifier != nil {
		e.notifier(event)
	}
}

// Restore loads persisted state, falling back to a fresh default pool
// when nothing has been saved yet. A corrupt or unreadable record is
// reported as a warning and replaced by defaults.
func (e *RaffleEngine) Restore() {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := models.RaffleConfig{QuantidadeNumeros: DefaultPoolSize}
	if err := e.store.Load(StateKeyConfig, &cfg); err != nil && !errors.Is(err, ErrStateNotFound) {
		logger.Warnf("raffle: restore config: %v", err)
		cfg = models.RaffleConfig{QuantidadeNumeros: DefaultPoolSize}
	}
	if !validators.ValidateNumberQuantity(cfg.QuantidadeNumeros) {
		cfg.QuantidadeNumeros = DefaultPoolSize
	}
	e.config = cfg

	var tickets []models.Ticket
	err := e.store.Load(StateKeyTickets, &tickets)
	switch {
	case err == nil && len(tickets) > 0 && !poolNumberingValid(tickets):
		logger.Warnf("raffle: persisted pool numbering is broken, rebuilding")
		e.tickets = buildPool(e.config.QuantidadeNumeros)
		e.persistTicketsLocked()
	case err == nil && len(tickets) > 0:
		e.tickets = tickets
		// The live pool is authoritative for the size invariant.
		e.config.QuantidadeNumeros = len(tickets)
	case err == nil || errors.Is(err, ErrStateNotFound):
		e.tickets = buildPool(e.config.QuantidadeNumeros)
	default:
		logger.Warnf("raffle: restore tickets: %v", err)
		e.tickets = buildPool(e.config.QuantidadeNumeros)
	}

	var historico []models.HistoryEntry
	if err := e.store.Load(StateKeyHistorico, &historico); err != nil && !errors.Is(err, ErrStateNotFound) {
		logger.Warnf("raffle: restore history: %v", err)
	}
	e.historico = historico

	logger.Infof("raffle: restored pool of %d tickets, %d history entries", len(e.tickets), len(e.historico))
}

// InitializePool builds size fresh unsold tickets numbered 1..size,
// replacing the current pool and clearing any displayed draw result.
func (e *RaffleEngine) InitializePool(size int) error {
	if !validators.ValidateNumberQuantity(size) {
		return ErrPoolSizeOutOfRange
	}

	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return ErrDrawInProgress
	}
	e.resetPoolLocked(size)
	e.mu.Unlock()

	e.notify("pool_initialized")
	return nil
}

func (e *RaffleEngine) resetPoolLocked(size int) {
	e.config.QuantidadeNumeros = size
	e.tickets = buildPool(size)
	e.lastResult = nil
	e.persistConfigLocked()
	e.persistTicketsLocked()
}

// AssignBuyer marks ticket number as sold and attaches a fresh Buyer
// built from sanitized input. Re-assigning a sold ticket replaces its
// buyer. Name and contact must pass the strict validators.
func (e *RaffleEngine) AssignBuyer(number int, name, contact string) (models.Ticket, error) {
	if !validators.ValidateName(name) {
		return models.Ticket{}, ErrInvalidBuyerName
	}
	if !validators.ValidateContact(contact) {
		return models.Ticket{}, ErrInvalidBuyerContact
	}

	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return models.Ticket{}, ErrDrawInProgress
	}
	if !validators.ValidateTicketNumber(number, e.config.QuantidadeNumeros) {
		e.mu.Unlock()
		return models.Ticket{}, ErrTicketOutOfRange
	}

	ticket := &e.tickets[number-1]
	ticket.Sold = true
	ticket.Buyer = &models.Buyer{
		ID:      uuid.NewString(),
		Name:    validators.SanitizeText(name),
		Contact: validators.SanitizeText(contact),
	}
	assigned := *ticket
	e.persistTicketsLocked()
	e.mu.Unlock()

	logger.Infof("raffle: ticket %d assigned", number)
	e.notify("buyer_assigned")
	return assigned, nil
}

// ChangeConfiguration replaces the pool size and rebuilds the pool,
// discarding every assignment. Destructive when tickets are sold, so it
// then requires a confirmation token. History is never touched.
func (e *RaffleEngine) ChangeConfiguration(size int, token string) error {
	if !validators.ValidateNumberQuantity(size) {
		return ErrPoolSizeOutOfRange
	}

	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return ErrDrawInProgress
	}
	if e.soldCountLocked() > 0 {
		if err := e.confirmLocked(ConfirmChangeConfig, token); err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.resetPoolLocked(size)
	e.mu.Unlock()

	logger.Infof("raffle: pool size changed to %d", size)
	e.notify("config_changed")
	return nil
}

// ResetPool rebuilds the pool at the current size, discarding every
// assignment and the displayed draw result. Requires confirmation when
// tickets are sold.
func (e *RaffleEngine) ResetPool(token string) error {
	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return ErrDrawInProgress
	}
	if e.soldCountLocked() > 0 {
		if err := e.confirmLocked(ConfirmResetPool, token); err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.resetPoolLocked(e.config.QuantidadeNumeros)
	e.mu.Unlock()

	e.notify("pool_reset")
	return nil
}

// Draw picks one sold ticket uniformly at random, appends a snapshot of
// the result to the history ledger and returns it. The spin window keeps
// the engine in StatusDrawing for spinDelay; concurrent draws and pool
// mutations are rejected during that window.
func (e *RaffleEngine) Draw() (*DrawResult, error) {
	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return nil, ErrDrawInProgress
	}
	soldNumbers := e.soldNumbersLocked()
	if len(soldNumbers) == 0 {
		e.mu.Unlock()
		return nil, ErrNoSoldTickets
	}
	e.status = StatusDrawing
	e.mu.Unlock()

	e.notify("draw_started")
	if e.spinDelay > 0 {
		time.Sleep(e.spinDelay)
	}

	e.mu.Lock()
	// Mutations are rejected while drawing, so the sold set is unchanged.
	winnerNumber := soldNumbers[e.rng.Intn(len(soldNumbers))]
	ticket := e.tickets[winnerNumber-1]

	entry := models.HistoryEntry{
		ID:             uuid.NewString(),
		Data:           time.Now(),
		NumeroSorteado: ticket.Number,
	}
	if ticket.Buyer != nil {
		entry.Ganhador = &models.Winner{Nome: ticket.Buyer.Name, Contato: ticket.Buyer.Contact}
	}

	// Ledger first, persistence mirror second.
	e.historico = append([]models.HistoryEntry{entry}, e.historico...)
	e.persistHistoryLocked()

	result := &DrawResult{NumeroSorteado: entry.NumeroSorteado, Ganhador: entry.Ganhador}
	e.lastResult = result
	e.status = StatusIdle
	e.mu.Unlock()

	logger.Infof("raffle: drew ticket %d", result.NumeroSorteado)
	e.notify("draw_resolved")
	return result, nil
}

// History returns the ledger, newest first.
func (e *RaffleEngine) History() []models.HistoryEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.HistoryEntry, len(e.historico))
	copy(out, e.historico)
	return out
}

// ClearHistory empties the ledger and its persisted mirror. Irreversible,
// so it requires confirmation when the ledger is not empty.
func (e *RaffleEngine) ClearHistory(token string) error {
	e.mu.Lock()
	if len(e.historico) > 0 {
		if err := e.confirmLocked(ConfirmClearHistory, token); err != nil {
			e.mu.Unlock()
			return err
		}
	}
	e.historico = nil
	e.store.Clear(StateKeyHistorico)
	e.mu.Unlock()

	e.notify("history_cleared")
	return nil
}

// WipeState clears every persisted record and reinitializes a default
// pool. Always requires confirmation.
func (e *RaffleEngine) WipeState(token string) error {
	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return ErrDrawInProgress
	}
	if err := e.confirmLocked(ConfirmWipeState, token); err != nil {
		e.mu.Unlock()
		return err
	}
	e.store.ClearAll()
	e.config = models.RaffleConfig{QuantidadeNumeros: DefaultPoolSize}
	e.tickets = buildPool(DefaultPoolSize)
	e.historico = nil
	e.lastResult = nil
	e.mu.Unlock()

	e.notify("state_wiped")
	return nil
}

// ExportAll produces the canonical backup document from the live state.
func (e *RaffleEngine) ExportAll() *models.BackupDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tickets := make([]models.Ticket, len(e.tickets))
	copy(tickets, e.tickets)
	historico := make([]models.HistoryEntry, len(e.historico))
	copy(historico, e.historico)

	return &models.BackupDocument{
		Tickets:   tickets,
		Historico: historico,
		Config:    e.config,
	}
}

// ImportAll replaces all persisted and in-memory state from a backup
// document. The whole document is validated before anything is written;
// the three kinds are then written in one transaction and the in-memory
// state reloaded from the accepted document. On any failure the existing
// state is left fully intact.
func (e *RaffleEngine) ImportAll(raw []byte) error {
	if !validators.ValidateBackupFormat(raw) {
		return ErrImportRejected
	}
	var doc models.BackupDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImportRejected, err)
	}
	if !validators.ValidateNumberQuantity(doc.Config.QuantidadeNumeros) {
		return fmt.Errorf("%w: quantidadeNumeros out of range", ErrImportRejected)
	}
	if !poolNumberingValid(doc.Tickets) {
		return fmt.Errorf("%w: tickets must be numbered 1..n", ErrImportRejected)
	}

	e.mu.Lock()
	if e.status == StatusDrawing {
		e.mu.Unlock()
		return ErrDrawInProgress
	}
	if err := e.store.ReplaceAll(&doc); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrImportRejected, err)
	}

	e.config = doc.Config
	if len(doc.Tickets) > 0 {
		e.tickets = doc.Tickets
		e.config.QuantidadeNumeros = len(doc.Tickets)
	} else {
		e.tickets = buildPool(e.config.QuantidadeNumeros)
	}
	e.historico = doc.Historico
	e.lastResult = nil
	e.mu.Unlock()

	logger.Infof("raffle: imported backup with %d tickets, %d history entries", len(doc.Tickets), len(doc.Historico))
	e.notify("imported")
	return nil
}

// BoardState snapshots the pool for the grid and the realtime hub.
func (e *RaffleEngine) BoardState() BoardState {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tickets := make([]models.Ticket, len(e.tickets))
	copy(tickets, e.tickets)

	return BoardState{
		Status:            e.status,
		QuantidadeNumeros: e.config.QuantidadeNumeros,
		Vendidos:          e.soldCountLocked(),
		Tickets:           tickets,
		UltimoResultado:   e.lastResult,
	}
}

// Config returns the current configuration.
func (e *RaffleEngine) Config() models.RaffleConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

func (e *RaffleEngine) confirmLocked(reason, token string) error {
	if token != "" && e.confirms.Confirm(token, reason) {
		return nil
	}
	return &ConfirmationError{Reason: reason, Token: e.confirms.Request(reason)}
}

func (e *RaffleEngine) soldCountLocked() int {
	count := 0
	for i := range e.tickets {
		if e.tickets[i].Sold {
			count++
		}
	}
	return count
}

func (e *RaffleEngine) soldNumbersLocked() []int {
	var numbers []int
	for i := range e.tickets {
		if e.tickets[i].Sold {
			numbers = append(numbers, e.tickets[i].Number)
		}
	}
	return numbers
}

func (e *RaffleEngine) persistTicketsLocked() { e.store.Save(StateKeyTickets, e.tickets) }
func (e *RaffleEngine) persistHistoryLocked() { e.store.Save(StateKeyHistorico, e.historico) }
func (e *RaffleEngine) persistConfigLocked()  { e.store.Save(StateKeyConfig, e.config) }

// poolNumberingValid reports whether tickets are numbered exactly 1..n.
// The engine indexes the pool by ticket number, so any pool it installs
// must satisfy this first.
func poolNumberingValid(tickets []models.Ticket) bool {
	for i := range tickets {
		if tickets[i].Number != i+1 {
			return false
		}
	}
	return true
}

func buildPool(size int) []models.Ticket {
	tickets := make([]models.Ticket, size)
	for i := range tickets {
		tickets[i] = models.Ticket{Number: i + 1}
	}
	return tickets
}
