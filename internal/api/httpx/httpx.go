package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/bkarakas/ledger-core/internal/ledgererr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteDomainError maps an error kind to its HTTP status. No message
// text is ever inspected.
func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch ledgererr.KindOf(err) {
	case ledgererr.KindInvalidInput:
		status, code = http.StatusBadRequest, "invalid_input"
	case ledgererr.KindNotFound:
		status, code = http.StatusNotFound, "not_found"
	case ledgererr.KindConflict:
		status, code = http.StatusConflict, "conflict"
	case ledgererr.KindInsufficientFunds:
		status, code = http.StatusUnprocessableEntity, "insufficient_funds"
	case ledgererr.KindInactiveAccount:
		status, code = http.StatusUnprocessableEntity, "inactive_account"
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	WriteError(w, status, code, msg, nil)
}
