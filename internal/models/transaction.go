package models

import "time"

type TransactionType string

const (
	TxnTransfer TransactionType = "transfer"
)

type TransactionStatus string

const (
	TxnPending   TransactionStatus = "pending"
	TxnCompleted TransactionStatus = "completed"
	TxnFailed    TransactionStatus = "failed"
)

// Transaction is an append-only ledger record. Status reaches its
// terminal value inside the same atomic unit as the two balance writes
// and the record is immutable afterwards.
type Transaction struct {
	ID            int64             `json:"id"`
	FromAccountID int64             `json:"from_account_id"`
	ToAccountID   int64             `json:"to_account_id"`
	Amount        int64             `json:"amount"`
	Type          TransactionType   `json:"type"`
	Status        TransactionStatus `json:"status"`
	Description   string            `json:"description"`
	CreatedAt     time.Time         `json:"created_at"`
}
