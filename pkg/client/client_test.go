package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": status < 400, "data": data})
}

func writeAPIError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]interface{}{"code": code, "message": message, "details": details},
	})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/"})
}

func TestAccountService_List(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/accounts" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, []map[string]interface{}{
			{"id": 1, "clientName": "Ana", "platform": "Netflix", "lifecycle": "expiring", "daysRemaining": 3},
		})
	})

	accounts, err := c.Accounts().List(context.Background(), &AccountListOptions{Platform: "Netflix", Lifecycle: "expiring"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if gotQuery != "lifecycle=expiring&platform=Netflix" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(accounts) != 1 || accounts[0].ClientName != "Ana" || accounts[0].DaysRemaining != 3 {
		t.Errorf("accounts = %+v", accounts)
	}
}

func TestAccountService_GetNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeAPIError(w, http.StatusNotFound, "NOT_FOUND", "Account not found", nil)
	})

	_, err := c.Accounts().Get(context.Background(), 42)
	if !IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestAccountService_CreateValidation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		writeAPIError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid account data", []map[string]string{
			{"field": "clientName", "tag": "notblank", "message": "clientName is required"},
		})
	})

	_, err := c.Accounts().Create(context.Background(), &CreateAccountRequest{Platform: "Netflix"})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if !apiErr.IsValidationError() || apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("unexpected error %v", apiErr)
	}
	if fields := apiErr.Fields(); len(fields) != 1 || fields[0].Field != "clientName" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestAccountService_Delete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/accounts/7" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.Accounts().Delete(context.Background(), 7); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestAccountService_Export(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/accounts/export/csv" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "id,clientName\n1,Ana\n")
	})

	data, err := c.Accounts().Export(context.Background(), "csv")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if string(data) != "id,clientName\n1,Ana\n" {
		t.Errorf("data = %q", data)
	}
}

func TestAccountService_ImportDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `[{"clientName":"Ana"}]` {
			t.Errorf("body = %s", body)
		}
		writeEnvelope(w, http.StatusOK, map[string]interface{}{
			"imported": 0,
			"failed":   1,
			"errors":   []map[string]interface{}{{"index": 0, "error": "platform is required"}},
		})
	})

	result, err := c.Accounts().ImportDocument(context.Background(), []byte(`[{"clientName":"Ana"}]`))
	if err != nil {
		t.Fatalf("ImportDocument() error = %v", err)
	}
	if result.Failed != 1 || len(result.Errors) != 1 || result.Errors[0].Index != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestClient_Health(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantConnected bool
	}{
		{name: "connected", status: http.StatusOK, wantConnected: true},
		{name: "disconnected", status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusOK {
					writeEnvelope(w, http.StatusOK, map[string]string{"status": "connected", "database": "sqlite"})
					return
				}
				writeAPIError(w, tt.status, "SERVICE_UNAVAILABLE", "Database connection failed",
					map[string]string{"status": "disconnected", "database": "sqlite"})
			})

			health, err := c.Health(context.Background())
			if err != nil {
				t.Fatalf("Health() error = %v", err)
			}
			if health.Connected() != tt.wantConnected || health.Database != "sqlite" {
				t.Errorf("health = %+v", health)
			}
		})
	}
}
