package services

import (
	"context"
	"strings"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
	"github.com/bkarakas/ledger-core/internal/models"
	repo "github.com/bkarakas/ledger-core/internal/repository"
)

type UserService struct {
	users    repo.Users
	accounts repo.Accounts
	audit    *Auditor
}

func NewUserService(u repo.Users, a repo.Accounts, audit *Auditor) *UserService {
	return &UserService{users: u, accounts: a, audit: audit}
}

func (s *UserService) Create(ctx context.Context, name, email string) (models.User, error) {
	u := models.User{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, ledgererr.Conflict("email already exists")
	}
	created, err := s.users.Create(ctx, u.Name, u.Email)
	if err != nil {
		return models.User{}, err
	}
	s.audit.Record("user", created.ID, "created", nil)
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Update(ctx context.Context, id int64, name, email string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if name != "" {
		u.Name = strings.TrimSpace(name)
	}
	if email != "" {
		u.Email = strings.TrimSpace(email)
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	s.audit.Record("user", id, "updated", nil)
	return s.users.GetByID(ctx, id)
}

// Delete refuses while the user still owns accounts.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	accts, err := s.accounts.ListByUser(ctx, id)
	if err != nil {
		return err
	}
	if len(accts) > 0 {
		return ledgererr.Conflict("user still has accounts")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record("user", id, "deleted", nil)
	return nil
}
