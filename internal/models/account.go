package models

import "time"

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
	AccountFrozen   AccountStatus = "frozen"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountActive, AccountInactive, AccountFrozen:
		return true
	}
	return false
}

// Account holds a user's balance in minor units (cents) to avoid
// floating-point drift. Balance is never negative; it is mutated only
// through the store's Debit/Credit.
type Account struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	AccountNumber string        `json:"account_number"`
	Balance       int64         `json:"balance"`
	Currency      string        `json:"currency"`
	Status        AccountStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
