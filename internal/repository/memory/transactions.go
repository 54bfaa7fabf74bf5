package memory

import (
	"context"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
)

type transactions struct{ s *Store }

func (r *transactions) Append(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return appendTxn(r.s, tx), nil
}

func (r *transactions) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.txnIdx[id]
	if !ok {
		return models.Transaction{}, ledgererr.NotFound("transaction not found")
	}
	return r.s.txns[i], nil
}

func (r *transactions) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]models.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return listByAccount(r.s, accountID, limit, offset), nil
}

// txTransactions assumes the store lock is held by Atomic.
type txTransactions struct {
	s *Store
	j *journal
}

func (r *txTransactions) Append(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	r.j.appended++
	return appendTxn(r.s, tx), nil
}

func (r *txTransactions) GetByID(ctx context.Context, id int64) (models.Transaction, error) {
	i, ok := r.s.txnIdx[id]
	if !ok {
		return models.Transaction{}, ledgererr.NotFound("transaction not found")
	}
	return r.s.txns[i], nil
}

func (r *txTransactions) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]models.Transaction, error) {
	return listByAccount(r.s, accountID, limit, offset), nil
}

func appendTxn(s *Store, tx models.Transaction) models.Transaction {
	s.nextTxnID++
	tx.ID = s.nextTxnID
	tx.CreatedAt = s.now()
	s.txnIdx[tx.ID] = len(s.txns)
	s.txns = append(s.txns, tx)
	return tx
}

// listByAccount walks the append-ordered log backwards, so results come
// out most-recent-first.
func listByAccount(s *Store, accountID int64, limit, offset int) []models.Transaction {
	var out []models.Transaction
	skipped := 0
	for i := len(s.txns) - 1; i >= 0 && len(out) < limit; i-- {
		tx := s.txns[i]
		if tx.FromAccountID != accountID && tx.ToAccountID != accountID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, tx)
	}
	return out
}
