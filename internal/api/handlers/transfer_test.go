package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pratik-mahalle/streamvault/internal/domain/account"
	"github.com/pratik-mahalle/streamvault/internal/testutil"
)

func TestTransferHandler_Export(t *testing.T) {
	tests := []struct {
		name                string
		path                string
		expectedStatus      int
		expectedType        string
		expectedDisposition string
	}{
		{name: "json path", path: "/api/accounts/export/json", expectedStatus: http.StatusOK, expectedType: "application/json", expectedDisposition: `attachment; filename="streaming_accounts.json"`},
		{name: "default format", path: "/api/accounts/export", expectedStatus: http.StatusOK, expectedType: "application/json", expectedDisposition: `attachment; filename="streaming_accounts.json"`},
		{name: "csv query", path: "/api/accounts/export?format=csv", expectedStatus: http.StatusOK, expectedType: "text/csv", expectedDisposition: `attachment; filename="streaming_accounts.csv"`},
		{name: "yaml path", path: "/api/accounts/export/yaml", expectedStatus: http.StatusOK, expectedType: "application/yaml", expectedDisposition: `attachment; filename="streaming_accounts.yaml"`},
		{name: "unsupported", path: "/api/accounts/export/xml", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rr := srv.do(t, http.MethodGet, tt.path, "")

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			if got := rr.Header().Get("Content-Type"); got != tt.expectedType {
				t.Errorf("Content-Type = %q, want %q", got, tt.expectedType)
			}
			if got := rr.Header().Get("Content-Disposition"); got != tt.expectedDisposition {
				t.Errorf("Content-Disposition = %q, want %q", got, tt.expectedDisposition)
			}
			if !strings.Contains(rr.Body.String(), "Bruno Diaz") {
				t.Errorf("export is missing an account: %s", rr.Body.String())
			}
		})
	}
}

func TestTransferHandler_ExportIgnoresFilters(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/accounts/export/json?platform=Spotify", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}

	var accounts []account.Account
	if err := json.Unmarshal(rr.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if len(accounts) != 3 {
		t.Errorf("exported %d accounts, want 3", len(accounts))
	}
}

func TestTransferHandler_Import(t *testing.T) {
	tests := []struct {
		name             string
		body             string
		expectedStatus   int
		expectedImported int
		expectedFailed   int
	}{
		{
			name: "wrapped document with one bad entry",
			body: `{"accounts":[
				{"clientName":"Eva","platform":"HBO Max","accountType":"Perfil","deliveryDate":"2024-03-01","expirationDate":"2024-04-01"},
				{"clientName":"","platform":"Netflix","accountType":"Perfil","deliveryDate":"2024-03-01"}
			]}`,
			expectedStatus:   http.StatusOK,
			expectedImported: 1,
			expectedFailed:   1,
		},
		{
			name:             "bare array",
			body:             `[{"clientName":"Eva","platform":"HBO Max","accountType":"Perfil","deliveryDate":"2024-03-01","expirationDate":"2024-04-01"}]`,
			expectedStatus:   http.StatusOK,
			expectedImported: 1,
		},
		{
			name:           "empty batch",
			body:           `{"accounts":[]}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no accounts array",
			body:           `{"items":[]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not json",
			body:           `clientName,platform`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rr := srv.do(t, http.MethodPost, "/api/accounts/import", tt.body)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("handler returned wrong status code: got %v want %v: %s", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}

			env := decodeEnvelope(t, rr)
			var result account.ImportResult
			if err := json.Unmarshal(env.Data, &result); err != nil {
				t.Fatalf("failed to decode import result: %v", err)
			}
			if result.Imported != tt.expectedImported || result.Failed != tt.expectedFailed {
				t.Errorf("imported=%d failed=%d, want %d/%d", result.Imported, result.Failed, tt.expectedImported, tt.expectedFailed)
			}
			if len(result.Errors) != tt.expectedFailed {
				t.Errorf("got %d errors, want %d", len(result.Errors), tt.expectedFailed)
			}
			if tt.expectedFailed > 0 && result.Errors[0].Index != 1 {
				t.Errorf("error index = %d, want 1", result.Errors[0].Index)
			}
		})
	}
}

func TestTransferHandler_ImportTooLarge(t *testing.T) {
	h := NewTransferHandler(nil, testutil.NewTestLogger(), 16)

	req := httptest.NewRequest(http.MethodPost, "/api/accounts/import", strings.NewReader(`{"accounts":[{"clientName":"way past the limit"}]}`))
	rr := httptest.NewRecorder()
	h.Import(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusRequestEntityTooLarge)
	}
}
