package memory

import (
	"context"
	"sort"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
)

// accounts serves calls outside an atomic unit and takes the store lock
// per call; txAccounts runs inside Atomic with the lock already held.
type accounts struct{ s *Store }

func (r *accounts) Create(ctx context.Context, a models.Account) (models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.accounts {
		if other.AccountNumber == a.AccountNumber {
			return models.Account{}, ledgererr.Conflict("account number already exists")
		}
	}
	r.s.nextAccountID++
	now := r.s.now()
	a.ID = r.s.nextAccountID
	a.CreatedAt = now
	a.UpdatedAt = now
	r.s.accounts[a.ID] = a
	return a, nil
}

func (r *accounts) GetByID(ctx context.Context, id int64) (models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return getAccount(r.s, id)
}

func (r *accounts) GetByNumber(ctx context.Context, number string) (models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.AccountNumber == number {
			return a, nil
		}
	}
	return models.Account{}, ledgererr.NotFound("account not found")
}

func (r *accounts) ListByUser(ctx context.Context, userID int64) ([]models.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []models.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *accounts) GetForUpdate(ctx context.Context, id int64) (models.Account, error) {
	return r.GetByID(ctx, id)
}

func (r *accounts) Debit(ctx context.Context, id int64, amount int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return debit(r.s, id, amount)
}

func (r *accounts) Credit(ctx context.Context, id int64, amount int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return credit(r.s, id, amount)
}

func (r *accounts) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return ledgererr.NotFound("account not found")
	}
	a.Status = status
	a.UpdatedAt = r.s.now()
	r.s.accounts[id] = a
	return nil
}

func (r *accounts) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return ledgererr.NotFound("account not found")
	}
	delete(r.s.accounts, id)
	return nil
}

// txAccounts assumes the store lock is held by Atomic.
type txAccounts struct {
	s *Store
	j *journal
}

func (r *txAccounts) Create(ctx context.Context, a models.Account) (models.Account, error) {
	return models.Account{}, ledgererr.InvalidInput("account creation inside an atomic unit is not supported")
}

func (r *txAccounts) GetByID(ctx context.Context, id int64) (models.Account, error) {
	return getAccount(r.s, id)
}

func (r *txAccounts) GetByNumber(ctx context.Context, number string) (models.Account, error) {
	for _, a := range r.s.accounts {
		if a.AccountNumber == number {
			return a, nil
		}
	}
	return models.Account{}, ledgererr.NotFound("account not found")
}

func (r *txAccounts) ListByUser(ctx context.Context, userID int64) ([]models.Account, error) {
	var out []models.Account
	for _, a := range r.s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *txAccounts) GetForUpdate(ctx context.Context, id int64) (models.Account, error) {
	return getAccount(r.s, id)
}

func (r *txAccounts) Debit(ctx context.Context, id int64, amount int64) (int64, error) {
	r.j.touch(r.s, id)
	return debit(r.s, id, amount)
}

func (r *txAccounts) Credit(ctx context.Context, id int64, amount int64) (int64, error) {
	r.j.touch(r.s, id)
	return credit(r.s, id, amount)
}

func (r *txAccounts) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) error {
	return ledgererr.InvalidInput("status change inside an atomic unit is not supported")
}

func (r *txAccounts) Delete(ctx context.Context, id int64) error {
	return ledgererr.InvalidInput("account deletion inside an atomic unit is not supported")
}

func getAccount(s *Store, id int64) (models.Account, error) {
	a, ok := s.accounts[id]
	if !ok {
		return models.Account{}, ledgererr.NotFound("account not found")
	}
	return a, nil
}

func debit(s *Store, id int64, amount int64) (int64, error) {
	a, ok := s.accounts[id]
	if !ok {
		return 0, ledgererr.NotFound("account not found")
	}
	if a.Balance < amount {
		return 0, ledgererr.InsufficientFunds(a.Balance)
	}
	a.Balance -= amount
	a.UpdatedAt = s.now()
	s.accounts[id] = a
	return a.Balance, nil
}

func credit(s *Store, id int64, amount int64) (int64, error) {
	a, ok := s.accounts[id]
	if !ok {
		return 0, ledgererr.NotFound("account not found")
	}
	a.Balance += amount
	a.UpdatedAt = s.now()
	s.accounts[id] = a
	return a.Balance, nil
}
