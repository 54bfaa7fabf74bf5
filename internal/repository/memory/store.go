// Package memory implements the repository interfaces on in-process
// maps. It backs APP_STORAGE=memory and the test suite; the postgres
// package is the durable production backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bkarakas/ledger-core/internal/models"
	repo "github.com/bkarakas/ledger-core/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	nextUserID    int64
	nextAccountID int64
	nextTxnID     int64
	nextAuditID   int64

	users    map[int64]models.User
	accounts map[int64]models.Account
	txns     []models.Transaction
	txnIdx   map[int64]int
	audits   []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]models.User),
		accounts: make(map[int64]models.Account),
		txnIdx:   make(map[int64]int),
	}
}

func NewStores() repo.Stores {
	s := NewStore()
	return repo.Stores{
		Users:        &users{s},
		Accounts:     &accounts{s},
		Transactions: &transactions{s},
		AuditLogs:    &auditLogs{s},
		Atomic:       s,
	}
}

// journal remembers enough to undo an atomic unit: the first-seen
// balance of every touched account and how many records were appended.
type journal struct {
	balances map[int64]int64
	appended int
}

func (j *journal) touch(s *Store, id int64) {
	if _, ok := j.balances[id]; ok {
		return
	}
	if a, ok := s.accounts[id]; ok {
		j.balances[id] = a.Balance
	}
}

// Atomic holds the store write lock for the whole unit, so the writes
// inside fn are invisible until it returns. On error the journal restores
// every touched balance and drops the appended records.
func (s *Store) Atomic(ctx context.Context, fn func(repo.Accounts, repo.Transactions) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journal{balances: make(map[int64]int64)}
	if err := fn(&txAccounts{s: s, j: j}, &txTransactions{s: s, j: j}); err != nil {
		for id, bal := range j.balances {
			a := s.accounts[id]
			a.Balance = bal
			s.accounts[id] = a
		}
		for i := 0; i < j.appended; i++ {
			last := s.txns[len(s.txns)-1]
			delete(s.txnIdx, last.ID)
			s.txns = s.txns[:len(s.txns)-1]
		}
		return err
	}
	return nil
}

func (s *Store) now() time.Time { return time.Now().UTC() }
