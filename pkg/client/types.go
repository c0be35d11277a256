package client

import "time"

// Account represents a streaming account as the API returns it
type Account struct {
	ID             int64                  `json:"id"`
	ClientName     string                 `json:"clientName"`
	Platform       string                 `json:"platform"`
	AccountType    string                 `json:"accountType"`
	DeliveryDate   string                 `json:"deliveryDate"`   // YYYY-MM-DD
	ExpirationDate string                 `json:"expirationDate"` // YYYY-MM-DD
	Credentials    map[string]interface{} `json:"credentials,omitempty"`
	Notes          *string                `json:"notes,omitempty"`
	Price          *string                `json:"price,omitempty"` // decimal string
	Status         string                 `json:"status"`
	Lifecycle      string                 `json:"lifecycle"` // active, expiring, expired
	DaysRemaining  int                    `json:"daysRemaining"`
	Remaining      string                 `json:"remaining"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// Statistics counts every stored account by lifecycle
type Statistics struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// Options lists the values the console suggests
type Options struct {
	Platforms    []string `json:"platforms"`
	AccountTypes []string `json:"accountTypes"`
	Statuses     []string `json:"statuses"`
	Lifecycles   []string `json:"lifecycles"`
}

// ImportError describes one rejected import entry
type ImportError struct {
	Index  int          `json:"index"`
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// ImportResult summarises an import batch
type ImportResult struct {
	Imported int           `json:"imported"`
	Failed   int           `json:"failed"`
	Errors   []ImportError `json:"errors"`
}

// HealthResponse reports record store connectivity
type HealthResponse struct {
	Status   string `json:"status"` // connected or disconnected
	Database string `json:"database"`
}

// Connected reports whether the store answered
func (h *HealthResponse) Connected() bool {
	return h.Status == "connected"
}
