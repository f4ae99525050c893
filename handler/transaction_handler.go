package handler

import (
	"encoding/json"
	"errors"
	"go-bank-ledger/common"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
	"net/http"

	"github.com/shopspring/decimal"
)

// TransactionHandler holds dependencies for transaction-related handlers.
type TransactionHandler struct {
	service   *service.TransactionService
	reporting *service.ReportingService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.TransactionService, reporting *service.ReportingService) *TransactionHandler {
	return &TransactionHandler{service: s, reporting: reporting}
}

// Deposit godoc
// @Summary      Deposit money into an account
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        accountId path string true "The ID of the account to credit"
// @Param        deposit body model.AmountRequest true "Amount to deposit"
// @Success      200  {object}  model.Account
// @Failure      400  {object}  common.AppError "Invalid amount"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /accounts/{accountId}/deposit [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID := r.PathValue("accountId")

	amount, appErr := decodeAmount(r)
	if appErr != nil {
		return appErr
	}

	account, err := h.service.Deposit(r.Context(), accountID, amount)
	if err != nil {
		return mapEngineError(err, "Could not process deposit")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// Withdraw godoc
// @Summary      Withdraw money from an account
// @Description  Debits the account. A rejected attempt is still recorded in the ledger.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        accountId path string true "The ID of the account to debit"
// @Param        withdrawal body model.AmountRequest true "Amount to withdraw"
// @Success      200  {object}  model.Account
// @Failure      400  {object}  common.AppError "Invalid amount or insufficient balance"
// @Failure      404  {object}  common.AppError "Account not found"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /accounts/{accountId}/withdraw [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID := r.PathValue("accountId")

	amount, appErr := decodeAmount(r)
	if appErr != nil {
		return appErr
	}

	account, err := h.service.Withdraw(r.Context(), accountID, amount)
	if err != nil {
		return mapEngineError(err, "Could not process withdrawal")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// CreateTransfer godoc
// @Summary      Transfer money between accounts
// @Description  Atomically moves the amount from one account to another: both balance changes and both ledger entries commit together or not at all.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transfer body model.TransferRequest true "Details of the transfer"
// @Success      201  {object}  service.TransferResult
// @Failure      400  {object}  common.AppError "Bad request (e.g. insufficient balance, self transfer, invalid amount)"
// @Failure      404  {object}  common.AppError "Sender or receiver account not found"
// @Failure      500  {object}  common.AppError "Internal server error while processing transfer"
// @Router       /transfers [post]
func (h *TransactionHandler) CreateTransfer(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.TransferRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid amount", err)
	}

	result, err := h.service.Transfer(r.Context(), req.FromAccountID, req.ToAccountID, amount)
	if err != nil {
		return mapEngineError(err, "Could not process transfer")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
	return nil
}

// ListTransactionsForAccount godoc
// @Summary      List account transaction history
// @Description  Retrieves the ledger entries owned by the account, most recent first.
// @Tags         transactions
// @Produce      json
// @Param        accountId path string true "The ID of the account to retrieve transactions for"
// @Success      200  {array}   model.Transaction
// @Failure      500  {object}  common.AppError "Internal server error while retrieving transactions"
// @Router       /accounts/{accountId}/transactions [get]
func (h *TransactionHandler) ListTransactionsForAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID := r.PathValue("accountId")

	transactions, err := h.reporting.TransactionHistory(r.Context(), accountID)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve transactions", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(transactions)
	return nil
}

func decodeAmount(r *http.Request) (decimal.Decimal, *common.AppError) {
	var req model.AmountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return decimal.Zero, appErr
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return decimal.Zero, common.NewAppError(http.StatusBadRequest, "Invalid amount", err)
	}
	return amount, nil
}

// mapEngineError maps engine errors to appropriate HTTP status codes.
func mapEngineError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrSenderAccountNotFound),
		errors.Is(err, service.ErrReceiverAccountNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrSameAccountTransfer),
		errors.Is(err, service.ErrInsufficientBalance):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}
