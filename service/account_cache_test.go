package service

import (
	"go-bank-ledger/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountCache_Load(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetAllAccounts").Return([]*model.Account{
		{ID: "A", HolderName: "Ada", Balance: dec(t, "100.00")},
		{ID: "B", HolderName: "Bob", Balance: dec(t, "50.00")},
	}, nil).Once()

	cache := NewAccountCache()
	err := cache.Load(mockRepo)

	assert.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	acc, ok := cache.Get("A")
	assert.True(t, ok)
	assert.Equal(t, "Ada", acc.HolderName)
	mockRepo.AssertExpectations(t)
}

func TestAccountCache_Load_StoreError(t *testing.T) {
	mockRepo := new(MockAccountRepository)
	mockRepo.On("GetAllAccounts").Return(nil, assertErr).Once()

	cache := NewAccountCache()
	assert.ErrorIs(t, cache.Load(mockRepo), assertErr)
}

func TestAccountCache_GetReturnsCopies(t *testing.T) {
	cache := NewAccountCache()
	putAccount(t, cache, "A", "100.00", "50.00")

	acc, _ := cache.Get("A")
	acc.Balance = dec(t, "0.01")

	fresh, _ := cache.Get("A")
	assert.True(t, fresh.Balance.Equal(dec(t, "100.00")), "mutating a snapshot must not affect the cache")
}

func TestAccountCache_SetBalance(t *testing.T) {
	cache := NewAccountCache()
	putAccount(t, cache, "A", "100.00", "50.00")

	cache.SetBalance("A", dec(t, "42.00"))

	acc, _ := cache.Get("A")
	assert.True(t, acc.Balance.Equal(dec(t, "42.00")))

	// Unknown ids are ignored; no lazy population path exists.
	cache.SetBalance("missing", dec(t, "1.00"))
	_, ok := cache.Get("missing")
	assert.False(t, ok)
}

func TestAccountCache_AllIsASnapshot(t *testing.T) {
	cache := NewAccountCache()
	putAccount(t, cache, "A", "100.00", "50.00")

	all := cache.All()
	all["A"].Balance = dec(t, "0.00")
	delete(all, "A")

	acc, ok := cache.Get("A")
	assert.True(t, ok)
	assert.True(t, acc.Balance.Equal(dec(t, "100.00")))
}
