// Package ledgererr defines the domain error taxonomy. Handlers map
// kinds to HTTP status codes instead of matching on message text.
package ledgererr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidInput
	KindInsufficientFunds
	KindInactiveAccount
	KindConflict
	KindInternal
)

// Sides of a transfer, carried by InactiveAccount errors.
const (
	SideSource      = "source"
	SideDestination = "destination"
)

type Error struct {
	Kind    Kind
	Message string

	// Balance is the current balance at rejection time; set only for
	// KindInsufficientFunds.
	Balance int64

	// Side is SideSource or SideDestination; set only for
	// KindInactiveAccount.
	Side string

	cause error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func InsufficientFunds(balance int64) *Error {
	return &Error{
		Kind:    KindInsufficientFunds,
		Message: fmt.Sprintf("insufficient funds: current balance %d", balance),
		Balance: balance,
	}
}

func InactiveAccount(side string) *Error {
	return &Error{
		Kind:    KindInactiveAccount,
		Message: side + " account is not active",
		Side:    side,
	}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: err}
}

// KindOf reports the kind of err, or KindUnknown for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
