package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID                  string          `json:"id"`
	HolderName          string          `json:"holder_name"`
	Email               string          `json:"email"`
	Balance             decimal.Decimal `json:"balance"`
	MinBalanceThreshold decimal.Decimal `json:"min_balance_threshold"`
	CreatedAt           time.Time       `json:"created_at"`
}
