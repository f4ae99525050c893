package service

import (
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"
	"sync"

	"github.com/shopspring/decimal"
)

// AccountCache is the in-memory mirror of every account. It is populated
// once at startup and kept write-through afterwards: the store is written
// first and the cache only reflects a new balance after the store commit.
// There is no lazy population path, so a miss after startup means the
// account does not exist.
//
// All reads return copies so callers can never mutate cached state.
type AccountCache struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

func NewAccountCache() *AccountCache {
	return &AccountCache{accounts: make(map[string]*model.Account)}
}

// Load replaces the cache contents with every row from the store.
func (c *AccountCache) Load(repo repository.IAccountRepository) error {
	accounts, err := repo.GetAllAccounts()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = make(map[string]*model.Account, len(accounts))
	for _, acc := range accounts {
		cp := *acc
		c.accounts[acc.ID] = &cp
	}

	logger.Log.WithField("count", len(c.accounts)).Info("Loaded accounts into cache")
	return nil
}

// Get returns a snapshot of the account, or false if it does not exist.
func (c *AccountCache) Get(id string) (*model.Account, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	acc, ok := c.accounts[id]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

// Put stores a copy of the account. Used after a successful create.
func (c *AccountCache) Put(account *model.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *account
	c.accounts[account.ID] = &cp
}

// SetBalance updates the cached balance of an existing account. It must
// only be called after the corresponding store write has committed.
func (c *AccountCache) SetBalance(id string, balance decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if acc, ok := c.accounts[id]; ok {
		acc.Balance = balance
	}
}

// All returns a snapshot map of every account.
func (c *AccountCache) All() map[string]*model.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]*model.Account, len(c.accounts))
	for id, acc := range c.accounts {
		cp := *acc
		out[id] = &cp
	}
	return out
}

// Len reports the number of cached accounts.
func (c *AccountCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.accounts)
}
