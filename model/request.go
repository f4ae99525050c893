// file: model/request.go

package model

// CreateAccountRequest defines the payload for opening a new account.
// It includes validation tags to ensure data integrity at the entry point.
type CreateAccountRequest struct {
	ID                  string `json:"id" validate:"required,min=1,max=20"`
	HolderName          string `json:"holder_name" validate:"required,min=1,max=100"`
	Email               string `json:"email" validate:"required,email"`
	InitialBalance      string `json:"initial_balance" validate:"required"`
	MinBalanceThreshold string `json:"min_balance_threshold" validate:"required"`
}

// AmountRequest defines the payload for deposits and withdrawals.
// Amounts travel as strings so they can be parsed as exact decimals.
type AmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// TransferRequest defines the payload for a money transfer.
type TransferRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required"`
	ToAccountID   string `json:"to_account_id" validate:"required"`
	Amount        string `json:"amount" validate:"required"`
}
