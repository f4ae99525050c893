package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TypeDeposit     TransactionType = "DEPOSIT"
	TypeWithdrawal  TransactionType = "WITHDRAWAL"
	TypeTransferOut TransactionType = "TRANSFER_OUT"
	TypeTransferIn  TransactionType = "TRANSFER_IN"
)

type TransactionStatus string

const (
	StatusSuccess TransactionStatus = "SUCCESS"
	StatusFailed  TransactionStatus = "FAILED"
)

// Transaction is one row of the append-only ledger. Rows are never
// updated or deleted once written; rejected attempts are recorded with
// StatusFailed.
type Transaction struct {
	ID               int64             `json:"id"`
	AccountID        string            `json:"account_id"`
	Type             TransactionType   `json:"type"`
	Amount           decimal.Decimal   `json:"amount"`
	RelatedAccountID *string           `json:"related_account_id,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	Status           TransactionStatus `json:"status"`
	Remarks          string            `json:"remarks"`
}
