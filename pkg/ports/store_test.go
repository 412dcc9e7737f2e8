package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/lineator/pkg/domain"
	"github.com/aretw0/lineator/pkg/ports"
)

// MockStore is a map-backed ResultStore used to check the contract itself.
type MockStore struct {
	data map[string]domain.Record
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]domain.Record)}
}

func (m *MockStore) Put(ctx context.Context, key string, rec *domain.Record) error {
	m.data[key] = *rec
	return nil
}

func (m *MockStore) Get(ctx context.Context, key string) (*domain.Record, error) {
	rec, ok := m.data[key]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &rec, nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

func TestResultStore_Contract(t *testing.T) {
	var _ ports.ResultStore = (*MockStore)(nil)
	ports.RunResultStoreContract(t, NewMockStore())
}
