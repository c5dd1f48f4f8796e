package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/mitiledger/internal/domain"
)

// InMemoryLedgerRepository is a map-backed LedgerRepository for tests.
// Setting Err makes every call fail with it.
type InMemoryLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	Err error
}

// NewInMemoryLedgerRepository creates an empty repository.
func NewInMemoryLedgerRepository() *InMemoryLedgerRepository {
	return &InMemoryLedgerRepository{}
}

func (r *InMemoryLedgerRepository) Init(ctx context.Context) error {
	return r.Err
}

func (r *InMemoryLedgerRepository) Append(ctx context.Context, entries ...*domain.Entry) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		cp := *e
		r.entries = append(r.entries, &cp)
	}
	return nil
}

func (r *InMemoryLedgerRepository) QueryBalances(ctx context.Context) ([]domain.BalanceRow, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	type key struct {
		participant string
		kind        domain.Kind
	}
	totals := make(map[key]decimal.Decimal)
	var order []key
	for _, e := range r.entries {
		k := key{e.Participant, e.Kind}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(e.Amount)
	}

	rows := make([]domain.BalanceRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, domain.BalanceRow{Participant: k.participant, Kind: k.kind, Total: totals[k]})
	}
	return rows, nil
}

func (r *InMemoryLedgerRepository) QueryLast(ctx context.Context, participant, counterpart string) (*domain.Entry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last *domain.Entry
	for _, e := range r.entries {
		if e.Participant != participant && e.Participant != counterpart {
			continue
		}
		if last == nil || !e.CreatedAt.Before(last.CreatedAt) {
			last = e
		}
	}
	if last == nil {
		return nil, domain.ErrEntryNotFound
	}
	cp := *last
	return &cp, nil
}

func (r *InMemoryLedgerRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*domain.Entry
	for _, e := range r.entries {
		if e.TransactionID == transactionID {
			cp := *e
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *InMemoryLedgerRepository) Update(ctx context.Context, id string, amount decimal.Decimal, description string) error {
	return r.UpdateTransaction(ctx, []domain.EntryUpdate{{ID: id, Amount: amount, Description: description}})
}

func (r *InMemoryLedgerRepository) UpdateTransaction(ctx context.Context, updates []domain.EntryUpdate) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	byID := make(map[string]*domain.Entry, len(r.entries))
	for _, e := range r.entries {
		byID[e.ID] = e
	}
	for _, u := range updates {
		if _, ok := byID[u.ID]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrEntryNotFound, u.ID)
		}
	}
	for _, u := range updates {
		byID[u.ID].Amount = u.Amount
		byID[u.ID].Description = u.Description
	}
	return nil
}

func (r *InMemoryLedgerRepository) EraseAll(ctx context.Context) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	return nil
}

func (r *InMemoryLedgerRepository) SetBalance(ctx context.Context, own, counterpart *domain.Entry) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.Participant != own.Participant && e.Participant != counterpart.Participant {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	r.mu.Unlock()

	return r.Append(ctx, own, counterpart)
}

// Entries returns a snapshot of the stored entries ordered by ID.
func (r *InMemoryLedgerRepository) Entries() []domain.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Entry, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// InMemoryPendingStore is a map-backed PendingStore for tests.
type InMemoryPendingStore struct {
	mu     sync.Mutex
	states map[string]domain.PendingState

	Err error
}

// NewInMemoryPendingStore creates an empty store.
func NewInMemoryPendingStore() *InMemoryPendingStore {
	return &InMemoryPendingStore{states: make(map[string]domain.PendingState)}
}

func (s *InMemoryPendingStore) Get(ctx context.Context, sender string) (*domain.PendingState, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[sender]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (s *InMemoryPendingStore) Set(ctx context.Context, sender string, state *domain.PendingState) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sender] = *state
	return nil
}

func (s *InMemoryPendingStore) Delete(ctx context.Context, sender string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, sender)
	return nil
}

// SequenceIDGenerator returns zero-padded increasing IDs.
type SequenceIDGenerator struct {
	mu   sync.Mutex
	next int
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next)
}

// RecordingSender captures delivered replies.
type RecordingSender struct {
	mu   sync.Mutex
	Sent []string

	Err error
}

func (s *RecordingSender) SendText(ctx context.Context, conversationID, text string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, conversationID+": "+text)
	return nil
}

// RecordingObserver counts command outcomes.
type RecordingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *RecordingObserver) ObserveCommand(command, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[command+"/"+outcome]++
}

// Count returns how often command finished with outcome.
func (o *RecordingObserver) Count(command, outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[command+"/"+outcome]
}

// Clock is a settable time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock set to now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
