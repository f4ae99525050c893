package repository

import (
	"database/sql"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"time"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for the append-only ledger.
type ITransactionRepository interface {
	CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error
	GetTransactionsByAccountID(accountID string) ([]*model.Transaction, error)
	GetTransactionsByDate(day time.Time) ([]*model.Transaction, error)
}

// TransactionRepository implements ITransactionRepository.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

// CreateTransaction appends one ledger entry inside the given transaction.
// The store assigns the id and timestamp on insert.
func (r *TransactionRepository) CreateTransaction(tx *sql.Tx, transaction *model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": transaction.AccountID,
		"type":       transaction.Type,
		"amount":     transaction.Amount.String(),
		"status":     transaction.Status,
	})
	log.Info("Executing query to append a ledger entry")

	query := `INSERT INTO transactions (account_id, type, amount, related_account_id, status, remarks) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, timestamp`
	err := tx.QueryRow(query, transaction.AccountID, transaction.Type, transaction.Amount,
		transaction.RelatedAccountID, transaction.Status, transaction.Remarks).Scan(&transaction.ID, &transaction.Timestamp)
	if err != nil {
		log.WithError(err).Error("Failed to execute append ledger entry query")
		return err
	}
	return nil
}

// GetTransactionsByAccountID retrieves the ledger entries owned by one account.
func (r *TransactionRepository) GetTransactionsByAccountID(accountID string) ([]*model.Transaction, error) {
	log := logger.Log.WithField("account_id", accountID)
	log.Info("Executing query to get transactions by account ID")

	query := `
		SELECT id, account_id, type, amount, related_account_id, timestamp, status, remarks
		FROM transactions
		WHERE account_id = $1
		ORDER BY timestamp DESC`

	return r.queryTransactions(query, accountID)
}

// GetTransactionsByDate retrieves every ledger entry written on the given day.
func (r *TransactionRepository) GetTransactionsByDate(day time.Time) ([]*model.Transaction, error) {
	log := logger.Log.WithField("day", day.Format("2006-01-02"))
	log.Info("Executing query to get transactions by date")

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	query := `
		SELECT id, account_id, type, amount, related_account_id, timestamp, status, remarks
		FROM transactions
		WHERE timestamp >= $1 AND timestamp < $2
		ORDER BY timestamp DESC`

	return r.queryTransactions(query, start, end)
}

func (r *TransactionRepository) queryTransactions(query string, args ...interface{}) ([]*model.Transaction, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute ledger query")
		return nil, err
	}
	defer rows.Close()

	var transactions []*model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Type, &t.Amount, &t.RelatedAccountID, &t.Timestamp, &t.Status, &t.Remarks); err != nil {
			logger.Log.WithError(err).Error("Failed to scan transaction row")
			return nil, err
		}
		transactions = append(transactions, &t)
	}

	return transactions, rows.Err()
}
