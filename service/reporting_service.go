package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"
	"go-bank-ledger/repository"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingService is a read-only consumer of the account cache and the
// ledger. It never mutates either.
type ReportingService struct {
	accounts        *AccountCache
	transactionRepo repository.ITransactionRepository
	cacheClient     ICacheClient
	reportsDir      string
}

func NewReportingService(accounts *AccountCache, transactionRepo repository.ITransactionRepository, cacheClient ICacheClient, reportsDir string) *ReportingService {
	return &ReportingService{
		accounts:        accounts,
		transactionRepo: transactionRepo,
		cacheClient:     cacheClient,
		reportsDir:      reportsDir,
	}
}

// TransactionHistory returns the ledger entries of one account, utilizing a
// cache-aside strategy: serve from Redis when present, otherwise fetch from
// the ledger and store the result for future requests.
func (s *ReportingService) TransactionHistory(ctx context.Context, accountID string) ([]*model.Transaction, error) {
	cacheKey := historyCacheKey(accountID)

	if s.cacheClient != nil {
		cached, err := s.cacheClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var transactions []*model.Transaction
			if err := json.Unmarshal([]byte(cached), &transactions); err == nil {
				return transactions, nil
			}
		}
	}

	transactions, err := s.transactionRepo.GetTransactionsByAccountID(accountID)
	if err != nil {
		return nil, err
	}

	if s.cacheClient != nil {
		if data, err := json.Marshal(transactions); err == nil {
			s.cacheClient.Set(ctx, cacheKey, data, 10*time.Minute)
		}
	}

	return transactions, nil
}

// AccountSummary renders a table of every account with the total balance
// held across all of them.
func (s *ReportingService) AccountSummary() string {
	accounts := s.accounts.All()

	ids := make([]string, 0, len(accounts))
	for id := range accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString("========================================\n")
	b.WriteString("      ACCOUNT SUMMARY REPORT\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%-15s %-25s %-25s %15s\n", "Account ID", "Holder Name", "Email", "Balance")
	b.WriteString(strings.Repeat("-", 82) + "\n")

	total := decimal.Zero
	for _, id := range ids {
		acc := accounts[id]
		fmt.Fprintf(&b, "%-15s %-25s %-25s %15s\n", acc.ID, acc.HolderName, acc.Email, acc.Balance.StringFixed(2))
		total = total.Add(acc.Balance)
	}

	b.WriteString(strings.Repeat("-", 82) + "\n")
	fmt.Fprintf(&b, "Total Accounts: %d\n", len(accounts))
	fmt.Fprintf(&b, "Total Balance: %s\n", total.StringFixed(2))
	b.WriteString("========================================\n")
	return b.String()
}

// GenerateAccountSummaryReport writes the account summary to a timestamped
// file under the reports directory and returns its path.
func (s *ReportingService) GenerateAccountSummaryReport() (string, error) {
	filename := filepath.Join(s.reportsDir, fmt.Sprintf("account_summary_%s.txt", time.Now().Format("20060102_150405")))
	if err := s.writeReport(filename, s.AccountSummary()); err != nil {
		return "", err
	}
	logger.Log.WithField("file", filename).Info("Account summary report generated")
	return filename, nil
}

// DailyReport renders every ledger entry written on the given day together
// with the total SUCCESS volume.
func (s *ReportingService) DailyReport(ctx context.Context, day time.Time) (string, error) {
	transactions, err := s.transactionRepo.GetTransactionsByDate(day)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("========================================\n")
	b.WriteString("     DAILY TRANSACTION REPORT\n")
	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "Date: %s\n", day.Format("2006-01-02"))
	fmt.Fprintf(&b, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "%-8s %-15s %-15s %12s %-10s %s\n", "TXN ID", "Account", "Type", "Amount", "Status", "Remarks")
	b.WriteString(strings.Repeat("-", 90) + "\n")

	volume := decimal.Zero
	for _, t := range transactions {
		fmt.Fprintf(&b, "%-8d %-15s %-15s %12s %-10s %s\n",
			t.ID, t.AccountID, t.Type, t.Amount.StringFixed(2), t.Status, t.Remarks)
		if t.Status == model.StatusSuccess {
			volume = volume.Add(t.Amount)
		}
	}

	b.WriteString(strings.Repeat("-", 90) + "\n")
	fmt.Fprintf(&b, "Total Transactions: %d\n", len(transactions))
	fmt.Fprintf(&b, "Total Transaction Volume: %s\n", volume.StringFixed(2))
	b.WriteString("========================================\n")
	return b.String(), nil
}

func (s *ReportingService) writeReport(filename, content string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("could not create reports directory: %w", err)
	}
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		return fmt.Errorf("could not write report: %w", err)
	}
	return nil
}
