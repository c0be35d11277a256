package account

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Account is one streaming-service subscription handed to a client
type Account struct {
	ID             int64               `json:"id"`
	ClientName     string              `json:"clientName"`
	Platform       string              `json:"platform"`
	AccountType    string              `json:"accountType"`
	DeliveryDate   Date                `json:"deliveryDate"`
	ExpirationDate Date                `json:"expirationDate"`
	Credentials    Credentials         `json:"credentials"`
	Notes          *string             `json:"notes"`
	Price          decimal.NullDecimal `json:"price"`
	Status         string              `json:"status"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// Lifecycle classifies the account against now
func (a *Account) Lifecycle(now time.Time) Lifecycle {
	return Classify(a.ExpirationDate.Time, now)
}

// DaysRemaining returns the whole days until the account expires, relative to now
func (a *Account) DaysRemaining(now time.Time) int {
	return DaysRemaining(a.ExpirationDate.Time, now)
}

// Account statuses. Status is free text; these are the values the console offers.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusCancelled = "cancelled"
)

// Suggested platforms and account types offered by the console
var (
	SuggestedPlatforms = []string{
		"Netflix",
		"Disney+",
		"HBO Max",
		"Amazon Prime",
		"Spotify",
		"YouTube Premium",
		"Apple Music",
		"Paramount+",
	}

	SuggestedAccountTypes = []string{
		"Perfil",
		"Cuenta completa",
	}

	SuggestedStatuses = []string{StatusActive, StatusSuspended, StatusCancelled}
)

// Patch holds a partial update. Nil fields are left unchanged.
type Patch struct {
	ClientName     *string
	Platform       *string
	AccountType    *string
	DeliveryDate   *Date
	ExpirationDate *Date
	Status         *string

	// A non-nil pointer to a nil map clears the credentials
	Credentials *Credentials
	// Valid=false clears the field
	Notes *sql.NullString
	Price *decimal.NullDecimal
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.ClientName == nil && p.Platform == nil && p.AccountType == nil &&
		p.DeliveryDate == nil && p.ExpirationDate == nil && p.Status == nil &&
		p.Credentials == nil && p.Notes == nil && p.Price == nil
}

// Apply writes the patch onto a copy of a and returns it
func (p Patch) Apply(a Account) Account {
	if p.ClientName != nil {
		a.ClientName = *p.ClientName
	}
	if p.Platform != nil {
		a.Platform = *p.Platform
	}
	if p.AccountType != nil {
		a.AccountType = *p.AccountType
	}
	if p.DeliveryDate != nil {
		a.DeliveryDate = *p.DeliveryDate
	}
	if p.ExpirationDate != nil {
		a.ExpirationDate = *p.ExpirationDate
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Credentials != nil {
		a.Credentials = *p.Credentials
	}
	if p.Notes != nil {
		if p.Notes.Valid {
			notes := p.Notes.String
			a.Notes = &notes
		} else {
			a.Notes = nil
		}
	}
	if p.Price != nil {
		a.Price = *p.Price
	}
	return a
}
