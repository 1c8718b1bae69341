package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hausbuch/backend/internal/model"
)

// MemoryStore implements Store with in-memory maps. It backs local
// development and tests.
type MemoryStore struct {
	mu sync.RWMutex

	transactions map[string]*model.Transaction
	recurring    map[string]*model.RecurringTransaction
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*model.Transaction),
		recurring:    make(map[string]*model.RecurringTransaction),
	}
}

// Transaction operations

func (m *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	m.transactions[tx.ID] = tx
	return nil
}

func (m *MemoryStore) BatchCreateTransactions(ctx context.Context, txns []*model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, tx := range txns {
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		m.transactions[tx.ID] = tx
	}
	return nil
}

func (m *MemoryStore) ListTransactionsForAccount(ctx context.Context, accountID string, since time.Time) ([]*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.Transaction
	for _, tx := range m.transactions {
		if tx.AccountID != accountID {
			continue
		}
		if tx.Date.Before(since) {
			continue
		}
		result = append(result, tx)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MemoryStore) ListAccountIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var ids []string
	for _, tx := range m.transactions {
		if !seen[tx.AccountID] {
			seen[tx.AccountID] = true
			ids = append(ids, tx.AccountID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Recurring transaction operations

func (m *MemoryStore) GetRecurringTransaction(ctx context.Context, accountID, id string) (*model.RecurringTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rt, ok := m.recurring[id]
	if !ok || rt.AccountID != accountID {
		return nil, nil
	}
	return rt, nil
}

func (m *MemoryStore) GetRecurringTransactionByPattern(ctx context.Context, accountID, merchantPattern string, txType model.TransactionType) (*model.RecurringTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rt := range m.recurring {
		if rt.AccountID == accountID && rt.MerchantPattern == merchantPattern && rt.Type == txType {
			return rt, nil
		}
	}
	return nil, nil
}

func (m *MemoryStore) UpdateRecurringTransaction(ctx context.Context, rt *model.RecurringTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recurring[rt.ID] = rt
	return nil
}

func (m *MemoryStore) ListRecurringTransactions(ctx context.Context, accountID string, activeOnly bool) ([]*model.RecurringTransaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.RecurringTransaction
	for _, rt := range m.recurring {
		if rt.AccountID != accountID {
			continue
		}
		if activeOnly && !rt.IsActive {
			continue
		}
		result = append(result, rt)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ConfidenceScore != result[j].ConfidenceScore {
			return result[i].ConfidenceScore > result[j].ConfidenceScore
		}
		return result[i].MerchantPattern < result[j].MerchantPattern
	})
	return result, nil
}

func (m *MemoryStore) SaveRecurringTransactions(ctx context.Context, accountID string, records []*model.RecurringTransaction, replaceAll bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if replaceAll {
		for id, rt := range m.recurring {
			if rt.AccountID == accountID {
				delete(m.recurring, id)
			}
		}
	}
	for _, rt := range records {
		if rt.ID == "" {
			rt.ID = uuid.New().String()
		}
		m.recurring[rt.ID] = rt
	}
	return nil
}
