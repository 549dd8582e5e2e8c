package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"accountsvc/internal/events"
	"accountsvc/internal/models"
	"accountsvc/internal/registry"
	"accountsvc/internal/store/memory"
	"accountsvc/internal/websocket"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type stubGate struct {
	checkFn func(ctx context.Context, clientID string) registry.Eligibility
}

func (s stubGate) CheckEligible(ctx context.Context, clientID string) registry.Eligibility {
	if s.checkFn == nil {
		return registry.Eligibility{Eligible: true}
	}
	return s.checkFn(ctx, clientID)
}

type stubLookup struct {
	mu     sync.Mutex
	calls  map[string]int
	findFn func(ctx context.Context, clientID string) (models.ClientProfile, error)
}

func (s *stubLookup) FindByID(ctx context.Context, clientID string) (models.ClientProfile, error) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[clientID]++
	s.mu.Unlock()
	return s.findFn(ctx, clientID)
}

func (s *stubLookup) callsFor(clientID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[clientID]
}

type stubAccountStore struct {
	getFn          func(ctx context.Context, accountNumber string) (models.Account, error)
	listFn         func(ctx context.Context) ([]models.Account, error)
	listByClientFn func(ctx context.Context, clientID string) ([]models.Account, error)
	createFn       func(ctx context.Context, account models.Account) (models.Account, error)
	updateFn       func(ctx context.Context, account models.Account) (models.Account, error)
	deleteFn       func(ctx context.Context, accountNumber string) error
}

func (s stubAccountStore) Get(ctx context.Context, accountNumber string) (models.Account, error) {
	return s.getFn(ctx, accountNumber)
}

func (s stubAccountStore) List(ctx context.Context) ([]models.Account, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubAccountStore) ListByClient(ctx context.Context, clientID string) ([]models.Account, error) {
	if s.listByClientFn == nil {
		return nil, nil
	}
	return s.listByClientFn(ctx, clientID)
}

func (s stubAccountStore) Create(ctx context.Context, account models.Account) (models.Account, error) {
	if s.createFn == nil {
		return account, nil
	}
	return s.createFn(ctx, account)
}

func (s stubAccountStore) Update(ctx context.Context, account models.Account) (models.Account, error) {
	if s.updateFn == nil {
		account.Version++
		return account, nil
	}
	return s.updateFn(ctx, account)
}

func (s stubAccountStore) Delete(ctx context.Context, accountNumber string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, accountNumber)
}

type stubLedger struct {
	appendFn func(ctx context.Context, account models.Account, movement models.Movement) (models.Movement, error)
}

func (s stubLedger) AppendMovement(ctx context.Context, account models.Account, movement models.Movement) (models.Movement, error) {
	return s.appendFn(ctx, account, movement)
}

type recordingHub struct {
	mu      sync.Mutex
	updates []websocket.BalanceUpdate
}

func (h *recordingHub) BroadcastBalance(_ string, update websocket.BalanceUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updates = append(h.updates, update)
}

type stubPublisher struct {
	mu        sync.Mutex
	published []events.MovementRecorded
	err       error
	// when set, each publish signals started and then waits for release
	started chan struct{}
	release chan struct{}
}

func (p *stubPublisher) PublishMovement(_ context.Context, event events.MovementRecorded) error {
	if p.release != nil {
		p.started <- struct{}{}
		<-p.release
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return p.err
}

// fixture wires real services over the in-memory backend.
type fixture struct {
	store     *memory.Store
	accounts  *AccountService
	movements *MovementService
	reports   *ReportService
	hub       *recordingHub
	publisher *stubPublisher
	lookup    *stubLookup
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := memory.NewStore(1)
	require.NoError(t, err)
	locks := NewKeyedLocker()
	hub := &recordingHub{}
	publisher := &stubPublisher{}
	lookup := &stubLookup{findFn: func(_ context.Context, clientID string) (models.ClientProfile, error) {
		return models.ClientProfile{ID: clientID, Identification: clientID, Name: "Jose Lema", Status: models.ClientStatusActive}, nil
	}}
	return &fixture{
		store:     st,
		accounts:  NewAccountService(st.Accounts(), stubGate{}, locks),
		movements: NewMovementService(st.Accounts(), st.Movements(), st.Ledger(), locks, hub, publisher),
		reports:   NewReportService(st.Accounts(), st.Movements(), lookup),
		hub:       hub,
		publisher: publisher,
		lookup:    lookup,
	}
}

func (f *fixture) openAccount(t *testing.T, number, client, balance string) models.Account {
	t.Helper()
	account, err := f.accounts.CreateAccount(context.Background(), CreateAccountRequest{
		AccountNumber: number,
		AccountType:   models.AccountTypeChecking,
		Balance:       decimal.RequireFromString(balance),
		Status:        models.AccountStatusActive,
		OwnerClientID: client,
	})
	require.NoError(t, err)
	return account
}

func (f *fixture) move(t *testing.T, number string, kind models.MovementKind, value string) models.Movement {
	t.Helper()
	movement, err := f.movements.CreateMovement(context.Background(), CreateMovementRequest{
		AccountNumber: number,
		Kind:          kind,
		Value:         decimal.RequireFromString(value),
	})
	require.NoError(t, err)
	return movement
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
