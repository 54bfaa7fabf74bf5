package models

import (
	"strings"
	"time"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ledgererr.InvalidInput("name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return ledgererr.InvalidInput("invalid email format")
	}
	return nil
}
