package handler

import (
	"go-bank-ledger/common"
	"go-bank-ledger/service"
	"net/http"
	"time"
)

type ReportHandler struct {
	service *service.ReportingService
}

func NewReportHandler(service *service.ReportingService) *ReportHandler {
	return &ReportHandler{service: service}
}

// AccountSummary godoc
// @Summary      Account summary report
// @Description  Renders a plain-text table of every account with the total balance held.
// @Tags         reports
// @Produce      plain
// @Success      200  {string}  string
// @Router       /reports/summary [get]
func (h *ReportHandler) AccountSummary(w http.ResponseWriter, r *http.Request) *common.AppError {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(h.service.AccountSummary()))
	return nil
}

// DailyReport godoc
// @Summary      Daily transaction report
// @Description  Renders every ledger entry of the requested day. Defaults to today when no date is given.
// @Tags         reports
// @Produce      plain
// @Param        date query string false "Day to report on, formatted YYYY-MM-DD"
// @Success      200  {string}  string
// @Failure      400  {object}  common.AppError "Invalid date"
// @Failure      500  {object}  common.AppError "Internal server error"
// @Router       /reports/daily [get]
func (h *ReportHandler) DailyReport(w http.ResponseWriter, r *http.Request) *common.AppError {
	day := time.Now()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return common.NewAppError(http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
		}
		day = parsed
	}

	report, err := h.service.DailyReport(r.Context(), day)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not generate daily report", err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
	return nil
}
