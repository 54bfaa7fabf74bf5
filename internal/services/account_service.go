package services

import (
	"context"
	"strings"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
	repo "github.com/bkarakas/ledger-core/internal/repository"
	"github.com/google/uuid"
)

type AccountService struct {
	accounts repo.Accounts
	users    repo.Users
	audit    *Auditor
}

func NewAccountService(a repo.Accounts, u repo.Users, audit *Auditor) *AccountService {
	return &AccountService{accounts: a, users: u, audit: audit}
}

// Create opens an account for an existing user. An empty account number
// gets a generated one; a taken number is a Conflict.
func (s *AccountService) Create(ctx context.Context, userID int64, number, currency string, balance int64) (models.Account, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return models.Account{}, err
	}
	if balance < 0 {
		return models.Account{}, ledgererr.InvalidInput("balance cannot be negative")
	}
	number = strings.TrimSpace(number)
	if number == "" {
		number = uuid.NewString()
	} else if _, err := s.accounts.GetByNumber(ctx, number); err == nil {
		return models.Account{}, ledgererr.Conflict("account number already exists")
	}
	if currency == "" {
		currency = "USD"
	}
	a, err := s.accounts.Create(ctx, models.Account{
		UserID:        userID,
		AccountNumber: number,
		Balance:       balance,
		Currency:      currency,
		Status:        models.AccountActive,
	})
	if err != nil {
		return models.Account{}, err
	}
	s.audit.Record("account", a.ID, "created", map[string]any{"user_id": userID})
	return a, nil
}

func (s *AccountService) GetByID(ctx context.Context, id int64) (models.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *AccountService) GetByNumber(ctx context.Context, number string) (models.Account, error) {
	return s.accounts.GetByNumber(ctx, number)
}

// GetUserAccounts lists a user's accounts, failing if the user itself is
// missing rather than returning an empty list.
func (s *AccountService) GetUserAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.accounts.ListByUser(ctx, userID)
}

func (s *AccountService) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) (models.Account, error) {
	if !status.Valid() {
		return models.Account{}, ledgererr.InvalidInput("invalid account status %q", status)
	}
	if err := s.accounts.UpdateStatus(ctx, id, status); err != nil {
		return models.Account{}, err
	}
	s.audit.Record("account", id, "status_change", map[string]any{"status": string(status)})
	return s.accounts.GetByID(ctx, id)
}

// Delete removes an account. An account still holding funds is never
// deleted.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Balance != 0 {
		return ledgererr.Conflict("account balance must be zero before deletion")
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record("account", id, "deleted", nil)
	return nil
}
