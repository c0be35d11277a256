package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	writeData := func(w http.ResponseWriter, status int, data interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
	}

	mux.HandleFunc("GET /api/accounts", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []map[string]interface{}{
			{"id": 1, "clientName": "Ana Torres", "platform": "Netflix", "accountType": "Perfil",
				"expirationDate": "2024-03-14", "lifecycle": "expiring", "remaining": "4 days", "status": "active"},
		})
	})
	mux.HandleFunc("GET /api/accounts/statistics", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]int{"total": 3, "active": 1, "expiring": 1, "expired": 1})
	})
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]string{"status": "connected", "database": "sqlite"})
	})
	mux.HandleFunc("PATCH /api/accounts/1", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if len(body) != 1 || body["status"] != "suspended" {
			t.Errorf("update body = %v, want only status", body)
		}
		writeData(w, http.StatusOK, map[string]interface{}{"id": 1, "status": "suspended"})
	})
	mux.HandleFunc("GET /api/accounts/export/csv", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		io.WriteString(w, "id,clientName\n1,Ana Torres\n")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	stdout = &buf
	outputFormat = ""
	t.Cleanup(func() { stdout = os.Stdout })

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestAccountListTable(t *testing.T) {
	srv := fakeServer(t)

	out, err := execute(t, "account", "list", "--server", srv.URL, "-o", "table")
	if err != nil {
		t.Fatalf("account list error = %v", err)
	}
	for _, want := range []string{"CLIENT", "Ana Torres", "[*] expiring", "4 days", "1 accounts"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAccountStatsJSON(t *testing.T) {
	srv := fakeServer(t)

	out, err := execute(t, "account", "stats", "--server", srv.URL, "-o", "json")
	if err != nil {
		t.Fatalf("account stats error = %v", err)
	}

	var stats map[string]int
	if err := json.Unmarshal([]byte(out), &stats); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if stats["total"] != 3 || stats["expiring"] != 1 {
		t.Errorf("stats = %v", stats)
	}
}

func TestAccountUpdateSendsOnlyChangedFlags(t *testing.T) {
	srv := fakeServer(t)

	if _, err := execute(t, "account", "update", "1", "--status", "suspended", "--server", srv.URL, "-o", "table"); err != nil {
		t.Fatalf("account update error = %v", err)
	}
}

func TestAccountExportToFile(t *testing.T) {
	srv := fakeServer(t)
	file := filepath.Join(t.TempDir(), "out.csv")

	if _, err := execute(t, "account", "export", "--format", "csv", "-f", file, "--server", srv.URL); err != nil {
		t.Fatalf("account export error = %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,clientName") {
		t.Errorf("export = %q", data)
	}
}

func TestStatus(t *testing.T) {
	srv := fakeServer(t)

	out, err := execute(t, "status", "--server", srv.URL, "-o", "table")
	if err != nil {
		t.Fatalf("status error = %v", err)
	}
	if !strings.Contains(out, "connected (sqlite)") || !strings.Contains(out, "3 total") {
		t.Errorf("unexpected status output:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"a much longer client name", 10, "a much ..."},
		{"Añoranza Múltiple", 8, "Añora..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
