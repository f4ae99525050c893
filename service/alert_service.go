package service

import (
	"fmt"
	"go-bank-ledger/logger"
	"go-bank-ledger/model"

	"github.com/sirupsen/logrus"
)

// AlertService checks account balances against their low-balance threshold
// and dispatches a notification when a balance has dropped below it. The
// threshold is advisory only; it is never enforced as a hard floor.
type AlertService struct {
	accounts *AccountCache
	email    IEmailSender
}

func NewAlertService(accounts *AccountCache, email IEmailSender) *AlertService {
	return &AlertService{accounts: accounts, email: email}
}

// CheckAndAlert re-reads the account and sends a low-balance alert if its
// balance is below the configured threshold. Errors are logged, never
// returned: an alert failure must not affect the operation that caused it.
func (s *AlertService) CheckAndAlert(accountID string) {
	account, ok := s.accounts.Get(accountID)
	if !ok {
		logger.Log.WithField("account_id", accountID).Warn("Account not found for alert check")
		return
	}

	if account.Balance.GreaterThanOrEqual(account.MinBalanceThreshold) {
		return
	}

	s.sendLowBalanceAlert(account)
}

// CheckAllAccounts sweeps every account and alerts on each one currently
// below its threshold.
func (s *AlertService) CheckAllAccounts() {
	for _, account := range s.accounts.All() {
		if account.Balance.LessThan(account.MinBalanceThreshold) {
			s.sendLowBalanceAlert(account)
		}
	}
}

func (s *AlertService) sendLowBalanceAlert(account *model.Account) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_id": account.ID,
		"balance":    account.Balance.StringFixed(2),
		"threshold":  account.MinBalanceThreshold.StringFixed(2),
	})

	subject := "Low Balance Alert - Account " + account.ID
	body := fmt.Sprintf(`Dear %s,

This is an automated alert to inform you that your account balance has fallen below the minimum threshold.

Account Details:
- Account ID: %s
- Current Balance: %s
- Minimum Threshold: %s

Please ensure adequate funds are maintained in your account.

Thank you,
Banking System
`,
		account.HolderName,
		account.ID,
		account.Balance.StringFixed(2),
		account.MinBalanceThreshold.StringFixed(2))

	if err := s.email.SendEmail(account.Email, subject, body); err != nil {
		log.WithError(err).Error("Failed to send low balance alert")
		return
	}
	log.Info("Low balance alert sent")
}
