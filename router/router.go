package router

import (
	"go-bank-ledger/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-bank-ledger/docs"
)

func NewRouter(accountHandler *handler.AccountHandler, transactionHandler *handler.TransactionHandler, reportHandler *handler.ReportHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /accounts", handler.ErrorHandlingMiddleware(accountHandler.CreateAccount))
	mux.Handle("GET /accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccounts))
	mux.Handle("GET /accounts/{accountId}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))

	mux.Handle("POST /accounts/{accountId}/deposit", handler.ErrorHandlingMiddleware(transactionHandler.Deposit))
	mux.Handle("POST /accounts/{accountId}/withdraw", handler.ErrorHandlingMiddleware(transactionHandler.Withdraw))
	mux.Handle("GET /accounts/{accountId}/transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactionsForAccount))
	mux.Handle("POST /transfers", handler.ErrorHandlingMiddleware(transactionHandler.CreateTransfer))

	mux.Handle("GET /reports/summary", handler.ErrorHandlingMiddleware(reportHandler.AccountSummary))
	mux.Handle("GET /reports/daily", handler.ErrorHandlingMiddleware(reportHandler.DailyReport))

	return mux
}
