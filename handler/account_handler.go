package handler

import (
	"encoding/json"
	"errors"
	"go-bank-ledger/common"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/service"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount godoc
// @Summary      Open a new bank account
// @Description  Creates an account with an initial balance and a low-balance alert threshold.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        account body model.CreateAccountRequest true "Details of the new account"
// @Success      201  {object}  model.Account
// @Failure      400  {object}  common.AppError "Invalid request or amount"
// @Failure      409  {object}  common.AppError "Account already exists"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CreateAccountRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	initialBalance, err := decimal.NewFromString(req.InitialBalance)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid initial balance", err)
	}
	minThreshold, err := decimal.NewFromString(req.MinBalanceThreshold)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid minimum balance threshold", err)
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_id":  req.ID,
		"holder_name": req.HolderName,
	})
	log.Info("Create account request received")

	account, err := h.service.CreateAccount(req.ID, req.HolderName, req.Email, initialBalance, minThreshold)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountAlreadyExists):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		case errors.Is(err, service.ErrInvalidAmount):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(account)
	return nil
}

// GetAccount godoc
// @Summary      Get a single account
// @Description  Returns the current snapshot of one account, including its balance.
// @Tags         accounts
// @Produce      json
// @Param        accountId path string true "The ID of the account"
// @Success      200  {object}  model.Account
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountID := r.PathValue("accountId")

	account, err := h.service.GetAccount(accountID)
	if err != nil {
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(account)
	return nil
}

// ListAccounts godoc
// @Summary      List all accounts
// @Description  Returns a snapshot of every account keyed by account id.
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  map[string]model.Account
// @Router       /accounts [get]
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	accounts := h.service.GetAllAccounts()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(accounts)
	return nil
}
