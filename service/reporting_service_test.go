package service

import (
	"context"
	"encoding/json"
	"go-bank-ledger/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReportingService_TransactionHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss fetches from the ledger and populates the cache", func(t *testing.T) {
		mockTxnRepo := new(MockTransactionRepository)
		historyCache := newFakeCacheClient()
		reporting := NewReportingService(NewAccountCache(), mockTxnRepo, historyCache, t.TempDir())

		mockTxnRepo.On("GetTransactionsByAccountID", "A").Return([]*model.Transaction{
			{ID: 1, AccountID: "A", Type: model.TypeDeposit, Amount: dec(t, "50.00"), Status: model.StatusSuccess},
		}, nil).Once()

		transactions, err := reporting.TransactionHistory(ctx, "A")

		assert.NoError(t, err)
		assert.Len(t, transactions, 1)
		assert.Contains(t, historyCache.store, "txns:A")
		mockTxnRepo.AssertExpectations(t)
	})

	t.Run("cache hit never touches the ledger", func(t *testing.T) {
		mockTxnRepo := new(MockTransactionRepository)
		historyCache := newFakeCacheClient()
		reporting := NewReportingService(NewAccountCache(), mockTxnRepo, historyCache, t.TempDir())

		cached, err := json.Marshal([]*model.Transaction{
			{ID: 7, AccountID: "A", Type: model.TypeWithdrawal, Amount: dec(t, "10.00"), Status: model.StatusSuccess},
		})
		assert.NoError(t, err)
		historyCache.store["txns:A"] = string(cached)

		transactions, err := reporting.TransactionHistory(ctx, "A")

		assert.NoError(t, err)
		if assert.Len(t, transactions, 1) {
			assert.Equal(t, int64(7), transactions[0].ID)
		}
		mockTxnRepo.AssertNotCalled(t, "GetTransactionsByAccountID")
	})

	t.Run("works without a cache client", func(t *testing.T) {
		mockTxnRepo := new(MockTransactionRepository)
		reporting := NewReportingService(NewAccountCache(), mockTxnRepo, nil, t.TempDir())

		mockTxnRepo.On("GetTransactionsByAccountID", "A").Return(nil, nil).Once()

		_, err := reporting.TransactionHistory(ctx, "A")
		assert.NoError(t, err)
	})
}

func TestReportingService_AccountSummary(t *testing.T) {
	cache := NewAccountCache()
	putAccount(t, cache, "A", "100.00", "50.00")
	putAccount(t, cache, "B", "200.50", "50.00")
	reporting := NewReportingService(cache, new(MockTransactionRepository), nil, t.TempDir())

	summary := reporting.AccountSummary()

	assert.Contains(t, summary, "ACCOUNT SUMMARY REPORT")
	assert.Contains(t, summary, "Holder A")
	assert.Contains(t, summary, "Holder B")
	assert.Contains(t, summary, "Total Accounts: 2")
	assert.Contains(t, summary, "Total Balance: 300.50")
}

func TestReportingService_GenerateAccountSummaryReport(t *testing.T) {
	cache := NewAccountCache()
	putAccount(t, cache, "A", "100.00", "50.00")
	reporting := NewReportingService(cache, new(MockTransactionRepository), nil, t.TempDir())

	path, err := reporting.GenerateAccountSummaryReport()

	assert.NoError(t, err)
	assert.FileExists(t, path)
}

func TestReportingService_DailyReport(t *testing.T) {
	mockTxnRepo := new(MockTransactionRepository)
	reporting := NewReportingService(NewAccountCache(), mockTxnRepo, nil, t.TempDir())

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	mockTxnRepo.On("GetTransactionsByDate", day).Return([]*model.Transaction{
		{ID: 1, AccountID: "A", Type: model.TypeDeposit, Amount: dec(t, "50.00"), Status: model.StatusSuccess},
		{ID: 2, AccountID: "A", Type: model.TypeWithdrawal, Amount: dec(t, "999.00"), Status: model.StatusFailed},
	}, nil).Once()

	report, err := reporting.DailyReport(context.Background(), day)

	assert.NoError(t, err)
	assert.Contains(t, report, "DAILY TRANSACTION REPORT")
	assert.Contains(t, report, "Total Transactions: 2")
	// Only SUCCESS entries count towards the volume.
	assert.Contains(t, report, "Total Transaction Volume: 50.00")
}
