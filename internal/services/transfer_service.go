package services

import (
	"context"
	"sync"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/metrics"
	"github.com/bkarakas/ledger-core/internal/models"
	repo "github.com/bkarakas/ledger-core/internal/repository"
)

// TransferService moves money between two accounts. A transfer either
// fully lands (both balances plus one completed log record) or leaves no
// trace; concurrent transfers on the same account serialize on
// per-account locks taken in ascending id order.
type TransferService struct {
	accounts repo.Accounts
	txns     repo.Transactions
	atomic   repo.Atomic
	audit    *Auditor
	locks    sync.Map // account id -> *sync.Mutex
}

func NewTransferService(a repo.Accounts, t repo.Transactions, at repo.Atomic, audit *Auditor) *TransferService {
	return &TransferService{accounts: a, txns: t, atomic: at, audit: audit}
}

func (s *TransferService) lock(id int64) *sync.Mutex {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (s *TransferService) Transfer(ctx context.Context, fromID, toID, amount int64, description string) (models.Transaction, error) {
	rec, err := s.transfer(ctx, fromID, toID, amount, description)
	if err != nil {
		metrics.TransfersFailed.WithLabelValues(failReason(err)).Inc()
		return models.Transaction{}, err
	}
	metrics.TransfersTotal.Inc()
	s.audit.Record("transaction", rec.ID, "transfer_completed", map[string]any{
		"from": fromID, "to": toID, "amount": amount,
	})
	return rec, nil
}

func (s *TransferService) transfer(ctx context.Context, fromID, toID, amount int64, description string) (models.Transaction, error) {
	if fromID == toID {
		return models.Transaction{}, ledgererr.InvalidInput("cannot transfer to the same account")
	}

	from, err := s.accounts.GetByID(ctx, fromID)
	if err != nil {
		return models.Transaction{}, sideError(err, ledgererr.SideSource)
	}
	to, err := s.accounts.GetByID(ctx, toID)
	if err != nil {
		return models.Transaction{}, sideError(err, ledgererr.SideDestination)
	}
	if amount <= 0 {
		return models.Transaction{}, ledgererr.InvalidInput("amount must be greater than zero")
	}
	if from.Balance < amount {
		return models.Transaction{}, ledgererr.InsufficientFunds(from.Balance)
	}
	if from.Status != models.AccountActive {
		return models.Transaction{}, ledgererr.InactiveAccount(ledgererr.SideSource)
	}
	if to.Status != models.AccountActive {
		return models.Transaction{}, ledgererr.InactiveAccount(ledgererr.SideDestination)
	}

	// Fixed total order: whichever direction the transfer runs, the lower
	// account id is locked first, so A->B and B->A cannot deadlock.
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	mu1 := s.lock(first)
	mu1.Lock()
	defer mu1.Unlock()
	mu2 := s.lock(second)
	mu2.Lock()
	defer mu2.Unlock()

	var rec models.Transaction
	err = s.atomic.Atomic(ctx, func(acc repo.Accounts, log repo.Transactions) error {
		// Row locks in the same ascending order as the mutexes.
		a1, err := acc.GetForUpdate(ctx, first)
		if err != nil {
			return err
		}
		a2, err := acc.GetForUpdate(ctx, second)
		if err != nil {
			return err
		}
		cur := a1
		if fromID == second {
			cur = a2
		}

		// The balance may have moved since the precheck.
		if cur.Balance < amount {
			return ledgererr.InsufficientFunds(cur.Balance)
		}
		if _, err := acc.Debit(ctx, fromID, amount); err != nil {
			return err
		}
		if _, err := acc.Credit(ctx, toID, amount); err != nil {
			return err
		}
		rec, err = log.Append(ctx, models.Transaction{
			FromAccountID: fromID,
			ToAccountID:   toID,
			Amount:        amount,
			Type:          models.TxnTransfer,
			Status:        models.TxnCompleted,
			Description:   description,
		})
		return err
	})
	if err != nil {
		return models.Transaction{}, wrapInternal(err)
	}
	return rec, nil
}

func (s *TransferService) GetTransaction(ctx context.Context, id int64) (models.Transaction, error) {
	return s.txns.GetByID(ctx, id)
}

// GetAccountTransactions lists an account's transfers most-recent-first,
// checking the account exists first.
func (s *TransferService) GetAccountTransactions(ctx context.Context, accountID int64, limit, offset int) ([]models.Transaction, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.txns.ListByAccount(ctx, accountID, limit, offset)
}

// sideError rewrites a bare account NotFound so the caller can tell
// which end of the transfer was missing.
func sideError(err error, side string) error {
	if ledgererr.IsKind(err, ledgererr.KindNotFound) {
		return ledgererr.NotFound("%s account not found", side)
	}
	return wrapInternal(err)
}

// wrapInternal surfaces storage faults as Internal; domain errors pass
// through untouched.
func wrapInternal(err error) error {
	if ledgererr.KindOf(err) == ledgererr.KindUnknown {
		return ledgererr.Internal(err)
	}
	return err
}

func failReason(err error) string {
	switch ledgererr.KindOf(err) {
	case ledgererr.KindNotFound:
		return "not_found"
	case ledgererr.KindInvalidInput:
		return "invalid_input"
	case ledgererr.KindInsufficientFunds:
		return "insufficient_funds"
	case ledgererr.KindInactiveAccount:
		return "inactive_account"
	default:
		return "internal"
	}
}
