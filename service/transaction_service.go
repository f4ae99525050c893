package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrSenderAccountNotFound   = errors.New("sender account not found")
	ErrReceiverAccountNotFound = errors.New("receiver account not found")
	ErrSameAccountTransfer     = errors.New("cannot transfer money to the same account")
	ErrInvalidAmount           = errors.New("invalid amount")
	ErrInsufficientBalance     = errors.New("insufficient balance")
	ErrPersistence             = errors.New("persistence failure")
)

const remarkInsufficientBalance = "Insufficient balance"

// AlertNotifier is invoked after a successful withdrawal or transfer debit.
// Implementations must not fail the calling operation.
type AlertNotifier interface {
	CheckAndAlert(accountID string)
}

// TransactionService is the transaction processing engine. Every operation
// reads balances from the in-memory cache, writes the store inside one unit
// of work, and only reflects the new balances in the cache after commit.
//
// Mutations on the same account are serialized through per-account locks;
// a transfer holds both locks, acquired in sorted id order.
type TransactionService struct {
	txManager       repository.ITxManager
	accountRepo     repository.IAccountRepository
	transactionRepo repository.ITransactionRepository
	cache           *AccountCache
	alerts          AlertNotifier
	historyCache    ICacheClient
	maxTxnLimit     decimal.Decimal
	locks           *accountLocks
}

func NewTransactionService(
	txManager repository.ITxManager,
	accountRepo repository.IAccountRepository,
	transactionRepo repository.ITransactionRepository,
	cache *AccountCache,
	alerts AlertNotifier,
	historyCache ICacheClient,
	maxTxnLimit decimal.Decimal,
) *TransactionService {
	return &TransactionService{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		cache:           cache,
		alerts:          alerts,
		historyCache:    historyCache,
		maxTxnLimit:     maxTxnLimit,
		locks:           newAccountLocks(),
	}
}

// TransferResult reports both accounts after a successful transfer.
type TransferResult struct {
	FromAccount *model.Account  `json:"from_account"`
	ToAccount   *model.Account  `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
}

// Deposit credits the account and appends a SUCCESS ledger entry. The
// balance update and the ledger entry commit together or not at all.
func (s *TransactionService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     amount.String(),
	})
	log.Info("Starting deposit")

	if err := s.validateAmount(amount); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	account, ok := s.cache.Get(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	newBalance := account.Balance.Add(amount)
	err := s.txManager.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.accountRepo.UpdateAccountBalance(tx, accountID, newBalance); err != nil {
			return err
		}
		return s.transactionRepo.CreateTransaction(tx, &model.Transaction{
			AccountID: accountID,
			Type:      model.TypeDeposit,
			Amount:    amount,
			Status:    model.StatusSuccess,
			Remarks:   "Deposit successful",
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.cache.SetBalance(accountID, newBalance)
	s.invalidateHistory(ctx, accountID)

	log.WithField("new_balance", newBalance.String()).Info("Deposit completed successfully")
	account.Balance = newBalance
	return account, nil
}

// Withdraw debits the account. An attempt against an insufficient balance
// is durably recorded as a FAILED ledger entry before the error returns.
// After a successful withdrawal the alert notifier is invoked; its outcome
// never affects the withdrawal.
func (s *TransactionService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": accountID,
		"amount":     amount.String(),
	})
	log.Info("Starting withdrawal")

	if err := s.validateAmount(amount); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	account, ok := s.cache.Get(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
	}

	if account.Balance.LessThan(amount) {
		if err := s.appendEntry(ctx, &model.Transaction{
			AccountID: accountID,
			Type:      model.TypeWithdrawal,
			Amount:    amount,
			Status:    model.StatusFailed,
			Remarks:   remarkInsufficientBalance,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil, fmt.Errorf("%w: available %s, requested %s",
			ErrInsufficientBalance, account.Balance.StringFixed(2), amount.StringFixed(2))
	}

	newBalance := account.Balance.Sub(amount)
	err := s.txManager.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.accountRepo.UpdateAccountBalance(tx, accountID, newBalance); err != nil {
			return err
		}
		return s.transactionRepo.CreateTransaction(tx, &model.Transaction{
			AccountID: accountID,
			Type:      model.TypeWithdrawal,
			Amount:    amount,
			Status:    model.StatusSuccess,
			Remarks:   "Withdrawal successful",
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.cache.SetBalance(accountID, newBalance)
	s.invalidateHistory(ctx, accountID)

	log.WithField("new_balance", newBalance.String()).Info("Withdrawal completed successfully")

	if s.alerts != nil {
		s.alerts.CheckAndAlert(accountID)
	}

	account.Balance = newBalance
	return account, nil
}

// Transfer atomically debits fromID and credits toID, appending a
// TRANSFER_OUT and a TRANSFER_IN entry in the same unit of work: either all
// four effects commit or none do. The alert notifier is invoked for the
// source account only.
func (s *TransactionService) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal) (*TransferResult, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_account_id": fromID,
		"to_account_id":   toID,
		"amount":          amount.String(),
	})
	log.Info("Starting money transfer process")

	if err := s.validateAmount(amount); err != nil {
		return nil, err
	}
	if fromID == toID {
		return nil, fmt.Errorf("%w: %s", ErrSameAccountTransfer, fromID)
	}

	unlock := s.locks.Lock(fromID, toID)
	defer unlock()

	fromAccount, ok := s.cache.Get(fromID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSenderAccountNotFound, fromID)
	}
	toAccount, ok := s.cache.Get(toID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrReceiverAccountNotFound, toID)
	}

	if fromAccount.Balance.LessThan(amount) {
		if err := s.appendEntry(ctx, &model.Transaction{
			AccountID:        fromID,
			Type:             model.TypeTransferOut,
			Amount:           amount,
			RelatedAccountID: &toID,
			Status:           model.StatusFailed,
			Remarks:          remarkInsufficientBalance,
		}); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
		}
		return nil, fmt.Errorf("%w: available %s, requested %s",
			ErrInsufficientBalance, fromAccount.Balance.StringFixed(2), amount.StringFixed(2))
	}

	newFromBalance := fromAccount.Balance.Sub(amount)
	newToBalance := toAccount.Balance.Add(amount)

	err := s.txManager.WithinTx(ctx, func(tx *sql.Tx) error {
		if err := s.accountRepo.UpdateAccountBalance(tx, fromID, newFromBalance); err != nil {
			return fmt.Errorf("could not update sender balance: %w", err)
		}
		if err := s.accountRepo.UpdateAccountBalance(tx, toID, newToBalance); err != nil {
			return fmt.Errorf("could not update receiver balance: %w", err)
		}
		if err := s.transactionRepo.CreateTransaction(tx, &model.Transaction{
			AccountID:        fromID,
			Type:             model.TypeTransferOut,
			Amount:           amount,
			RelatedAccountID: &toID,
			Status:           model.StatusSuccess,
			Remarks:          "Transfer to " + toID,
		}); err != nil {
			return fmt.Errorf("could not create transfer-out record: %w", err)
		}
		if err := s.transactionRepo.CreateTransaction(tx, &model.Transaction{
			AccountID:        toID,
			Type:             model.TypeTransferIn,
			Amount:           amount,
			RelatedAccountID: &fromID,
			Status:           model.StatusSuccess,
			Remarks:          "Transfer from " + fromID,
		}); err != nil {
			return fmt.Errorf("could not create transfer-in record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.cache.SetBalance(fromID, newFromBalance)
	s.cache.SetBalance(toID, newToBalance)
	s.invalidateHistory(ctx, fromID, toID)

	log.Info("Transfer completed successfully")

	if s.alerts != nil {
		s.alerts.CheckAndAlert(fromID)
	}

	fromAccount.Balance = newFromBalance
	toAccount.Balance = newToBalance
	return &TransferResult{FromAccount: fromAccount, ToAccount: toAccount, Amount: amount}, nil
}

func (s *TransactionService) validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, amount.String())
	}
	if amount.GreaterThan(s.maxTxnLimit) {
		return fmt.Errorf("%w: amount %s exceeds the maximum transaction limit of %s",
			ErrInvalidAmount, amount.String(), s.maxTxnLimit.String())
	}
	return nil
}

// appendEntry durably writes a single ledger entry outside of any balance
// change. Used for the FAILED audit rows of rejected attempts.
func (s *TransactionService) appendEntry(ctx context.Context, entry *model.Transaction) error {
	return s.txManager.WithinTx(ctx, func(tx *sql.Tx) error {
		return s.transactionRepo.CreateTransaction(tx, entry)
	})
}

// invalidateHistory drops the cached transaction history of the given
// accounts. Best effort: a cache error never fails the operation.
func (s *TransactionService) invalidateHistory(ctx context.Context, accountIDs ...string) {
	if s.historyCache == nil {
		return
	}
	keys := make([]string, len(accountIDs))
	for i, id := range accountIDs {
		keys[i] = historyCacheKey(id)
	}
	s.historyCache.Del(ctx, keys...)
}

// accountLocks hands out one mutex per account id so the balance
// read-modify-write of each operation is a critical section per account.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *accountLocks) forID(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// Lock acquires the locks for the given ids in sorted order, so two
// transfers between the same pair of accounts in opposite directions can
// never deadlock. The returned function releases them in reverse order.
func (l *accountLocks) Lock(ids ...string) func() {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		m := l.forID(id)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
