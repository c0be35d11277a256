package worker

import (
	"context"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
)

// ExpiryScanJob is the scheduler name of the expiry scanner
const ExpiryScanJob = "expiry-scan"

// ScanReport is the outcome of one expiry scan
type ScanReport struct {
	Statistics account.Statistics
	Expiring   []*account.Account
}

// ExpiryScanner periodically classifies every account, publishes the
// lifecycle gauges and logs the accounts about to expire
type ExpiryScanner struct {
	accounts account.Service
	logger   *logger.Logger
}

// NewExpiryScanner creates a new expiry scanner worker
func NewExpiryScanner(accounts account.Service, log *logger.Logger) *ExpiryScanner {
	return &ExpiryScanner{
		accounts: accounts,
		logger:   log,
	}
}

// Name implements Job
func (s *ExpiryScanner) Name() string {
	return ExpiryScanJob
}

// Run implements Job
func (s *ExpiryScanner) Run(ctx context.Context) error {
	_, err := s.Scan(ctx)
	return err
}

// Scan classifies every stored account against the service clock
func (s *ExpiryScanner) Scan(ctx context.Context) (*ScanReport, error) {
	accounts, err := s.accounts.List(ctx, account.Filter{})
	if err != nil {
		return nil, err
	}

	now := s.accounts.Now()
	report := &ScanReport{
		Statistics: account.Summarize(accounts, now),
		Expiring:   account.FilterByLifecycle(accounts, account.LifecycleExpiring, now),
	}

	metrics.SetAccountLifecycle(report.Statistics.Active, report.Statistics.Expiring, report.Statistics.Expired)

	for _, a := range report.Expiring {
		s.logger.WithFields(map[string]interface{}{
			"account_id":     a.ID,
			"client":         a.ClientName,
			"platform":       a.Platform,
			"expires":        a.ExpirationDate.String(),
			"days_remaining": a.DaysRemaining(now),
		}).Warn("Account expiring soon")
	}

	s.logger.WithFields(map[string]interface{}{
		"total":    report.Statistics.Total,
		"active":   report.Statistics.Active,
		"expiring": report.Statistics.Expiring,
		"expired":  report.Statistics.Expired,
	}).Info("Completed expiry scan")

	return report, nil
}
