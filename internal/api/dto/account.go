package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
)

// AccountDTO represents a streaming account in API responses
// Uses camelCase for frontend compatibility
type AccountDTO struct {
	ID             int64               `json:"id"`
	ClientName     string              `json:"clientName"`
	Platform       string              `json:"platform"`
	AccountType    string              `json:"accountType"`
	DeliveryDate   account.Date        `json:"deliveryDate" swaggertype:"string" example:"2024-03-01"`
	ExpirationDate account.Date        `json:"expirationDate" swaggertype:"string" example:"2024-04-01"`
	Credentials    account.Credentials `json:"credentials" swaggertype:"object"`
	Notes          *string             `json:"notes"`
	Price          decimal.NullDecimal `json:"price" swaggertype:"string" example:"12.5"`
	Status         string              `json:"status"`
	Lifecycle      account.Lifecycle   `json:"lifecycle" swaggertype:"string" enums:"active,expiring,expired"`
	DaysRemaining  int                 `json:"daysRemaining"`
	Remaining      string              `json:"remaining"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// FromAccount converts an account, classifying it against now
func FromAccount(a *account.Account, now time.Time) AccountDTO {
	days := a.DaysRemaining(now)
	return AccountDTO{
		ID:             a.ID,
		ClientName:     a.ClientName,
		Platform:       a.Platform,
		AccountType:    a.AccountType,
		DeliveryDate:   a.DeliveryDate,
		ExpirationDate: a.ExpirationDate,
		Credentials:    a.Credentials,
		Notes:          a.Notes,
		Price:          a.Price,
		Status:         a.Status,
		Lifecycle:      a.Lifecycle(now),
		DaysRemaining:  days,
		Remaining:      account.DescribeRemaining(days),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// FromAccounts converts a listing. The result is never nil so it encodes as [].
func FromAccounts(accounts []*account.Account, now time.Time) []AccountDTO {
	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = FromAccount(a, now)
	}
	return dtos
}

// StatisticsDTO is the per-lifecycle count of every stored account
type StatisticsDTO struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// FromStatistics converts aggregated statistics
func FromStatistics(s account.Statistics) StatisticsDTO {
	return StatisticsDTO{
		Total:    s.Total,
		Active:   s.Active,
		Expiring: s.Expiring,
		Expired:  s.Expired,
	}
}

// OptionsDTO lists the values the console offers in its pickers
type OptionsDTO struct {
	Platforms    []string `json:"platforms"`
	AccountTypes []string `json:"accountTypes"`
	Statuses     []string `json:"statuses"`
	Lifecycles   []string `json:"lifecycles"`
}

// DefaultOptions returns the built-in suggestion lists
func DefaultOptions() OptionsDTO {
	lifecycles := make([]string, len(account.Lifecycles))
	for i, l := range account.Lifecycles {
		lifecycles[i] = string(l)
	}
	return OptionsDTO{
		Platforms:    account.SuggestedPlatforms,
		AccountTypes: account.SuggestedAccountTypes,
		Statuses:     account.SuggestedStatuses,
		Lifecycles:   lifecycles,
	}
}

// ImportRequest is the body of an import. A bare JSON array is accepted too.
type ImportRequest struct {
	Accounts []account.Input `json:"accounts"`
}

// HealthDTO reports record store connectivity
type HealthDTO struct {
	Status   string `json:"status" example:"connected"`
	Database string `json:"database" example:"sqlite"`
}
