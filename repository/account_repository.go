package repository

import (
	"database/sql"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// IAccountRepository defines the contract for account database operations.
type IAccountRepository interface {
	CreateAccount(account *model.Account) error
	GetAllAccounts() ([]*model.Account, error)
	UpdateAccountBalance(tx *sql.Tx, accountID string, newBalance decimal.Decimal) error
}

// AccountRepository implements IAccountRepository.
type AccountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

// CreateAccount adds a new account to the database.
func (r *AccountRepository) CreateAccount(account *model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  account.ID,
		"holder_name": account.HolderName,
	})
	log.Info("Executing query to create a new account")

	query := `INSERT INTO accounts (id, holder_name, email, balance, min_balance_threshold) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`
	err := r.DB.QueryRow(query, account.ID, account.HolderName, account.Email, account.Balance, account.MinBalanceThreshold).Scan(&account.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return err
	}
	return nil
}

// GetAllAccounts retrieves every account from the database. Used once at
// startup to populate the in-memory cache.
func (r *AccountRepository) GetAllAccounts() ([]*model.Account, error) {
	log := logger.Log
	log.Info("Executing query to load all accounts")

	query := `SELECT id, holder_name, email, balance, min_balance_threshold, created_at FROM accounts`
	rows, err := r.DB.Query(query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all accounts")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.HolderName, &acc.Email, &acc.Balance, &acc.MinBalanceThreshold, &acc.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	return accounts, rows.Err()
}

// UpdateAccountBalance sets the stored balance inside the given transaction.
func (r *AccountRepository) UpdateAccountBalance(tx *sql.Tx, accountID string, newBalance decimal.Decimal) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  accountID,
		"new_balance": newBalance.String(),
	})
	log.Info("Executing query to update account balance")

	query := `UPDATE accounts SET balance = $1 WHERE id = $2`
	_, err := tx.Exec(query, newBalance, accountID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account balance query")
		return err
	}
	return nil
}
