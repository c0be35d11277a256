package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
)

// MockAccountRepository is an in-memory implementation of account.Repository
type MockAccountRepository struct {
	mu       sync.Mutex
	Accounts map[int64]*account.Account
	NextID   int64

	ListError   error
	GetError    error
	CreateError error
	UpdateError error
	DeleteError error
	PingError   error

	// FailCreateAt makes the n-th Create call (1-based) fail with CreateError
	FailCreateAt int
	creates      int

	Calls []string
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[int64]*account.Account),
		NextID:   1,
	}
}

// Seed stores accounts as-is, assigning IDs in order
func (m *MockAccountRepository) Seed(accounts ...*account.Account) {
	for _, a := range accounts {
		_ = m.Create(context.Background(), a)
	}
	m.mu.Lock()
	m.Calls = nil
	m.creates = 0
	m.mu.Unlock()
}

func (m *MockAccountRepository) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *MockAccountRepository) List(ctx context.Context, filter account.Filter) ([]*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("List")

	if m.ListError != nil {
		return nil, m.ListError
	}

	ids := make([]int64, 0, len(m.Accounts))
	for id := range m.Accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := []*account.Account{}
	for _, id := range ids {
		a := m.Accounts[id]
		if filter.Matches(a) {
			cp := *a
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("GetByID")

	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Accounts[id]
	if !ok {
		return nil, errors.NotFound("Account")
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Create")
	m.creates++

	if m.CreateError != nil && (m.FailCreateAt == 0 || m.FailCreateAt == m.creates) {
		return m.CreateError
	}

	now := time.Now().UTC()
	a.ID = m.NextID
	m.NextID++
	if a.Status == "" {
		a.Status = account.StatusActive
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	cp := *a
	m.Accounts[a.ID] = &cp
	return nil
}

func (m *MockAccountRepository) Update(ctx context.Context, id int64, patch account.Patch) (*account.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Update")

	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	existing, ok := m.Accounts[id]
	if !ok {
		return nil, errors.NotFound("Account")
	}

	updated := patch.Apply(*existing)
	updated.UpdatedAt = time.Now().UTC()
	m.Accounts[id] = &updated

	cp := updated
	return &cp, nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Delete")

	if m.DeleteError != nil {
		return m.DeleteError
	}
	if _, ok := m.Accounts[id]; !ok {
		return errors.NotFound("Account")
	}
	delete(m.Accounts, id)
	return nil
}

func (m *MockAccountRepository) Ping(ctx context.Context) error {
	return m.PingError
}
