package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
	"github.com/pratik-mahalle/streamvault/internal/pkg/validator"
)

// AccountService implements account.Service
type AccountService struct {
	repo      account.Repository
	validator *validator.Validator
	rules     account.Rules
	logger    *logger.Logger
	now       func() time.Time
}

// AccountServiceOption customises an AccountService
type AccountServiceOption func(*AccountService)

// WithClock overrides the reference clock used for lifecycle classification
func WithClock(now func() time.Time) AccountServiceOption {
	return func(s *AccountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service
func NewAccountService(repo account.Repository, val *validator.Validator, rules account.Rules, log *logger.Logger, opts ...AccountServiceOption) account.Service {
	s := &AccountService{
		repo:      repo,
		validator: val,
		rules:     rules,
		logger:    log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the reference instant for classification
func (s *AccountService) Now() time.Time {
	return s.now()
}

// List returns the accounts matching filter
func (s *AccountService) List(ctx context.Context, filter account.Filter) ([]*account.Account, error) {
	filter = filter.Normalize()

	accounts, err := s.repo.List(ctx, filter.StoreCriteria())
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list accounts")
		return nil, err
	}

	now := filter.AsOf
	if now.IsZero() {
		now = s.now()
	}
	return account.FilterByLifecycle(accounts, filter.Lifecycle, now), nil
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new account
func (s *AccountService) Create(ctx context.Context, in account.Input) (*account.Account, error) {
	acc, verrs := in.ToAccount(s.validator, s.rules)
	if len(verrs) > 0 {
		return nil, errors.ValidationError("Invalid account data", verrs)
	}

	err := s.repo.Create(ctx, acc)
	metrics.RecordAccountOperation("create", err)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create account")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": acc.ID,
		"platform":   acc.Platform,
		"expires":    acc.ExpirationDate.String(),
	}).Info("Account created")

	return acc, nil
}

// Update validates and applies a partial update
func (s *AccountService) Update(ctx context.Context, id int64, in account.UpdateInput) (*account.Account, error) {
	patch, verrs := in.ToPatch(s.validator)
	if len(verrs) > 0 {
		return nil, errors.ValidationError("Invalid account data", verrs)
	}

	// The date-order rule needs the stored dates when only one side changes
	if s.rules.EnforceDateOrder && (patch.DeliveryDate != nil || patch.ExpirationDate != nil) {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if verrs := account.CheckDateOrder(patch.Apply(*existing), s.rules); len(verrs) > 0 {
			return nil, errors.ValidationError("Invalid account data", verrs)
		}
	}

	updated, err := s.repo.Update(ctx, id, patch)
	metrics.RecordAccountOperation("update", err)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.ErrorWithErr(err, "Failed to update account")
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": id,
	}).Info("Account updated")

	return updated, nil
}

// Delete removes an account
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	metrics.RecordAccountOperation("delete", err)
	if err != nil {
		if !errors.IsNotFound(err) {
			s.logger.ErrorWithErr(err, "Failed to delete account")
		}
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": id,
	}).Info("Account deleted")

	return nil
}

// Statistics classifies the full, unfiltered collection
func (s *AccountService) Statistics(ctx context.Context) (account.Statistics, error) {
	accounts, err := s.repo.List(ctx, account.Filter{})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to load accounts for statistics")
		return account.Statistics{}, err
	}

	return account.Summarize(accounts, s.now()), nil
}
