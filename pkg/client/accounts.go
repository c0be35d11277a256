package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// AccountService handles account-related API calls
type AccountService struct {
	client *Client
}

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	ClientName     string                 `json:"clientName"`
	Platform       string                 `json:"platform"`
	AccountType    string                 `json:"accountType"`
	DeliveryDate   string                 `json:"deliveryDate"`
	ExpirationDate string                 `json:"expirationDate"`
	Credentials    map[string]interface{} `json:"credentials,omitempty"`
	Notes          *string                `json:"notes,omitempty"`
	Price          *string                `json:"price,omitempty"`
	Status         string                 `json:"status,omitempty"`
}

// UpdateAccountRequest represents a partial update. Nil fields are left unchanged.
type UpdateAccountRequest struct {
	ClientName     *string                `json:"clientName,omitempty"`
	Platform       *string                `json:"platform,omitempty"`
	AccountType    *string                `json:"accountType,omitempty"`
	DeliveryDate   *string                `json:"deliveryDate,omitempty"`
	ExpirationDate *string                `json:"expirationDate,omitempty"`
	Credentials    map[string]interface{} `json:"credentials,omitempty"`
	Notes          *string                `json:"notes,omitempty"`
	Price          *string                `json:"price,omitempty"`
	Status         *string                `json:"status,omitempty"`
}

// AccountListOptions contains options for listing accounts
type AccountListOptions struct {
	Search      string
	Platform    string
	AccountType string
	Status      string
	Lifecycle   string
}

func (o *AccountListOptions) query() string {
	if o == nil {
		return ""
	}
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("search", o.Search)
	set("platform", o.Platform)
	set("accountType", o.AccountType)
	set("status", o.Status)
	set("lifecycle", o.Lifecycle)
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// List retrieves the accounts matching opts
func (s *AccountService) List(ctx context.Context, opts *AccountListOptions) ([]Account, error) {
	var accounts []Account
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/accounts"+opts.query(), nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Get retrieves a single account by ID
func (s *AccountService) Get(ctx context.Context, id int64) (*Account, error) {
	var a Account
	if err := s.client.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/accounts/%d", id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates a new account
func (s *AccountService) Create(ctx context.Context, req *CreateAccountRequest) (*Account, error) {
	var a Account
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/accounts", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies a partial update to an account
func (s *AccountService) Update(ctx context.Context, id int64, req *UpdateAccountRequest) (*Account, error) {
	var a Account
	if err := s.client.doRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/accounts/%d", id), req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete deletes an account
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", id), nil, nil)
}

// Statistics retrieves lifecycle counts over every account
func (s *AccountService) Statistics(ctx context.Context) (*Statistics, error) {
	var stats Statistics
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/accounts/statistics", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Options retrieves the suggested picker values
func (s *AccountService) Options(ctx context.Context) (*Options, error) {
	var opts Options
	if err := s.client.doRequest(ctx, http.MethodGet, "/api/accounts/options", nil, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Export downloads the whole collection in format (json, yaml or csv)
func (s *AccountService) Export(ctx context.Context, format string) ([]byte, error) {
	if format == "" {
		format = "json"
	}
	body, _, err := s.client.send(ctx, http.MethodGet, "/api/accounts/export/"+url.PathEscape(format), "", nil)
	return body, err
}

// Import creates one account per request
func (s *AccountService) Import(ctx context.Context, accounts []CreateAccountRequest) (*ImportResult, error) {
	var result ImportResult
	doc := map[string]interface{}{"accounts": accounts}
	if err := s.client.doRequest(ctx, http.MethodPost, "/api/accounts/import", doc, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ImportDocument uploads an export document as-is, either {"accounts": [...]} or a bare array
func (s *AccountService) ImportDocument(ctx context.Context, document []byte) (*ImportResult, error) {
	body, _, err := s.client.send(ctx, http.MethodPost, "/api/accounts/import", "application/json", bytes.NewReader(document))
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	var result ImportResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response data: %w", err)
	}
	return &result, nil
}
