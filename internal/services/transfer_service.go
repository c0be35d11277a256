package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/pkg/errors"
	"github.com/pratik-mahalle/streamvault/internal/pkg/logger"
	"github.com/pratik-mahalle/streamvault/internal/pkg/metrics"
	"github.com/pratik-mahalle/streamvault/internal/pkg/validator"
)

// TransferService implements account.TransferService on top of the account service
type TransferService struct {
	accounts account.Service
	logger   *logger.Logger
}

// NewTransferService creates a new import/export service
func NewTransferService(accounts account.Service, log *logger.Logger) account.TransferService {
	return &TransferService{
		accounts: accounts,
		logger:   log,
	}
}

// Export returns every stored account, unfiltered
func (s *TransferService) Export(ctx context.Context) ([]*account.Account, error) {
	accounts, err := s.accounts.List(ctx, account.Filter{})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"count": len(accounts),
	}).Info("Accounts exported")

	return accounts, nil
}

// Import creates one account per valid entry. A bad entry, or a store
// failure on one entry, is recorded by index and the batch carries on.
func (s *TransferService) Import(ctx context.Context, entries []json.RawMessage) (*account.ImportResult, error) {
	result := &account.ImportResult{Errors: []account.ImportError{}}

	for i, raw := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		var in account.Input
		if err := json.Unmarshal(raw, &in); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, account.ImportError{
				Index: i,
				Error: fmt.Sprintf("invalid entry: %v", err),
			})
			continue
		}

		if _, err := s.accounts.Create(ctx, in); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, importError(i, err))
			continue
		}

		result.Imported++
	}

	metrics.RecordImport(result.Imported, result.Failed)

	s.logger.WithFields(map[string]interface{}{
		"imported": result.Imported,
		"failed":   result.Failed,
	}).Info("Accounts imported")

	return result, nil
}

func importError(index int, err error) account.ImportError {
	ie := account.ImportError{Index: index, Error: err.Error()}

	if appErr, ok := errors.From(err); ok {
		ie.Error = appErr.Message
		if fields, ok := appErr.Details.([]validator.ValidationError); ok {
			ie.Fields = fields
			ie.Error = validator.Summary(fields)
		}
	}
	return ie
}
