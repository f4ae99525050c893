package handler

import (
	"go-bank-ledger/service"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// newOfflineEngine builds a transaction service without store or ledger;
// every lookup misses because the cache is empty, which is enough to
// exercise validation and error mapping without a database.
func newOfflineEngine() *service.TransactionService {
	return service.NewTransactionService(nil, nil, nil, service.NewAccountCache(), nil, nil, decimal.NewFromInt(1_000_000))
}

func TestTransactionHandler_Deposit_Validation(t *testing.T) {
	h := NewTransactionHandler(newOfflineEngine(), nil)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/accounts/A/deposit", strings.NewReader("{not json"))
		req.SetPathValue("accountId", "A")
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.Deposit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing amount", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/accounts/A/deposit", strings.NewReader(`{}`))
		req.SetPathValue("accountId", "A")
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.Deposit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("non-decimal amount", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/accounts/A/deposit", strings.NewReader(`{"amount":"ten"}`))
		req.SetPathValue("accountId", "A")
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.Deposit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTransactionHandler_ErrorMapping(t *testing.T) {
	h := NewTransactionHandler(newOfflineEngine(), nil)

	t.Run("unknown account maps to 404", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/accounts/ghost/deposit", strings.NewReader(`{"amount":"10.00"}`))
		req.SetPathValue("accountId", "ghost")
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.Deposit).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("invalid amount maps to 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/accounts/A/withdraw", strings.NewReader(`{"amount":"-1.00"}`))
		req.SetPathValue("accountId", "A")
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.Withdraw).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("self transfer maps to 400", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/transfers",
			strings.NewReader(`{"from_account_id":"A","to_account_id":"A","amount":"10.00"}`))
		rr := httptest.NewRecorder()

		ErrorHandlingMiddleware(h.CreateTransfer).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
