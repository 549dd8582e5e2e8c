package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"accountsvc/internal/models"
	"accountsvc/internal/store"

	"github.com/bwmarrin/snowflake"
)

// Store keeps accounts and movements in process memory. Accounts, Movements
// and Ledger return views over the same state so the service layer sees one
// consistent backend.
type Store struct {
	mu        sync.RWMutex
	ids       *snowflake.Node
	accounts  map[string]models.Account
	movements []models.Movement
}

func NewStore(node int64) (*Store, error) {
	ids, err := snowflake.NewNode(node)
	if err != nil {
		return nil, err
	}
	return &Store{
		ids:      ids,
		accounts: make(map[string]models.Account),
	}, nil
}

func (s *Store) Accounts() *AccountStore   { return &AccountStore{s: s} }
func (s *Store) Movements() *MovementStore { return &MovementStore{s: s} }
func (s *Store) Ledger() *LedgerStore      { return &LedgerStore{s: s} }

type AccountStore struct {
	s *Store
}

func (a *AccountStore) Get(_ context.Context, accountNumber string) (models.Account, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	account, ok := a.s.accounts[accountNumber]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}
	return account, nil
}

func (a *AccountStore) List(_ context.Context) ([]models.Account, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return a.s.sortedAccounts(func(models.Account) bool { return true }), nil
}

func (a *AccountStore) ListByClient(_ context.Context, clientID string) ([]models.Account, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return a.s.sortedAccounts(func(acc models.Account) bool { return acc.OwnerClientID == clientID }), nil
}

func (a *AccountStore) Create(_ context.Context, account models.Account) (models.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.accounts[account.AccountNumber]; ok {
		return models.Account{}, store.ErrConflict
	}
	a.s.accounts[account.AccountNumber] = account
	return account, nil
}

func (a *AccountStore) Update(_ context.Context, account models.Account) (models.Account, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	current, ok := a.s.accounts[account.AccountNumber]
	if !ok {
		return models.Account{}, store.ErrNotFound
	}
	if current.Version != account.Version {
		return models.Account{}, store.ErrVersionConflict
	}
	account.CreatedAt = current.CreatedAt
	account.OwnerClientID = current.OwnerClientID
	account.Version++
	a.s.accounts[account.AccountNumber] = account
	return account, nil
}

// Delete drops the account together with its movements.
func (a *AccountStore) Delete(_ context.Context, accountNumber string) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.accounts[accountNumber]; !ok {
		return store.ErrNotFound
	}
	delete(a.s.accounts, accountNumber)
	kept := a.s.movements[:0]
	for _, m := range a.s.movements {
		if m.AccountNumber != accountNumber {
			kept = append(kept, m)
		}
	}
	a.s.movements = kept
	return nil
}

type MovementStore struct {
	s *Store
}

func (m *MovementStore) Get(_ context.Context, id int64) (models.Movement, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, mv := range m.s.movements {
		if mv.ID == id {
			return mv, nil
		}
	}
	return models.Movement{}, store.ErrNotFound
}

func (m *MovementStore) List(_ context.Context) ([]models.Movement, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return m.s.filterMovements(func(models.Movement) bool { return true }), nil
}

func (m *MovementStore) ListByAccount(_ context.Context, accountNumber string) ([]models.Movement, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return m.s.filterMovements(func(mv models.Movement) bool { return mv.AccountNumber == accountNumber }), nil
}

// ListByDateRange includes both bounds.
func (m *MovementStore) ListByDateRange(_ context.Context, start, end time.Time) ([]models.Movement, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return m.s.filterMovements(func(mv models.Movement) bool {
		return !mv.Timestamp.Before(start) && !mv.Timestamp.After(end)
	}), nil
}

type LedgerStore struct {
	s *Store
}

// AppendMovement applies the same contract as the Postgres ledger: the balance
// write is rejected with store.ErrVersionConflict when account.Version is
// stale, and nothing is recorded in that case.
func (l *LedgerStore) AppendMovement(_ context.Context, account models.Account, movement models.Movement) (models.Movement, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	current, ok := l.s.accounts[account.AccountNumber]
	if !ok {
		return models.Movement{}, store.ErrNotFound
	}
	if current.Version != account.Version {
		return models.Movement{}, store.ErrVersionConflict
	}
	current.Balance = account.Balance
	current.UpdatedAt = account.UpdatedAt
	current.Version++
	l.s.accounts[current.AccountNumber] = current

	movement.ID = l.s.ids.Generate().Int64()
	l.s.movements = append(l.s.movements, movement)
	return movement, nil
}

func (s *Store) sortedAccounts(keep func(models.Account) bool) []models.Account {
	out := make([]models.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if keep(acc) {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].AccountNumber < out[j].AccountNumber
	})
	return out
}

// movements is append-only in id order, so filtering preserves it.
func (s *Store) filterMovements(keep func(models.Movement) bool) []models.Movement {
	out := make([]models.Movement, 0)
	for _, mv := range s.movements {
		if keep(mv) {
			out = append(out, mv)
		}
	}
	return out
}
