// file: service/account_service.go

package service

import (
	"errors"
	"fmt"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrAccountAlreadyExists = errors.New("account already exists")

// AccountService handles account creation and lookups. Reads are served
// from the in-memory cache; creation writes the store first and only then
// the cache.
type AccountService struct {
	repo  repository.IAccountRepository
	cache *AccountCache
}

func NewAccountService(repo repository.IAccountRepository, cache *AccountCache) *AccountService {
	return &AccountService{repo: repo, cache: cache}
}

// CreateAccount opens a new account with the given initial balance and
// low-balance threshold. The id must not already be in use.
func (s *AccountService) CreateAccount(id, holderName, email string, initialBalance, minThreshold decimal.Decimal) (*model.Account, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  id,
		"holder_name": holderName,
	})
	log.Info("Creating new account")

	if initialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}
	if _, ok := s.cache.Get(id); ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountAlreadyExists, id)
	}

	account := &model.Account{
		ID:                  id,
		HolderName:          holderName,
		Email:               email,
		Balance:             initialBalance,
		MinBalanceThreshold: minThreshold,
	}

	if err := s.repo.CreateAccount(account); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.cache.Put(account)
	log.Info("Account created successfully")
	return account, nil
}

// GetAccount returns a snapshot of the account from the cache.
func (s *AccountService) GetAccount(id string) (*model.Account, error) {
	account, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}
	return account, nil
}

// GetAllAccounts returns a snapshot of every account.
func (s *AccountService) GetAllAccounts() map[string]*model.Account {
	return s.cache.All()
}
