package account

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pratik-mahalle/streamvault/internal/pkg/validator"
)

// ExportFormat is a serialization format for the full account set
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
	FormatCSV  ExportFormat = "csv"
)

// ExportBasename is the file name stem of every export download
const ExportBasename = "streaming_accounts"

// ParseExportFormat parses a format name, defaulting to JSON when empty
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of the format
func (f ExportFormat) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

// Filename returns the download file name for the format
func (f ExportFormat) Filename() string {
	return ExportBasename + "." + string(f)
}

// ImportError describes one rejected import entry
type ImportError struct {
	Index  int                         `json:"index"`
	Error  string                      `json:"error"`
	Fields []validator.ValidationError `json:"fields,omitempty"`
}

// ImportResult summarises an import batch. Errors are ordered by index.
type ImportResult struct {
	Imported int           `json:"imported"`
	Failed   int           `json:"failed"`
	Errors   []ImportError `json:"errors"`
}

// Encode serializes accounts in the given format. JSON and YAML carry every
// persisted field; CSV flattens credentials to a JSON string.
func Encode(format ExportFormat, accounts []*Account) ([]byte, error) {
	if accounts == nil {
		accounts = []*Account{}
	}

	switch format {
	case FormatJSON, "":
		return json.MarshalIndent(accounts, "", "  ")
	case FormatYAML:
		return encodeYAML(accounts)
	case FormatCSV:
		return encodeCSV(accounts)
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// encodeYAML goes through the JSON form so both formats share field names
func encodeYAML(accounts []*Account) ([]byte, error) {
	b, err := json.Marshal(accounts)
	if err != nil {
		return nil, err
	}
	var generic []interface{}
	if err := json.Unmarshal(b, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(generic)
}

var csvHeader = []string{
	"id", "clientName", "platform", "accountType", "deliveryDate", "expirationDate",
	"credentials", "notes", "price", "status", "createdAt", "updatedAt",
}

func encodeCSV(accounts []*Account) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, a := range accounts {
		creds := ""
		if a.Credentials != nil {
			b, err := json.Marshal(a.Credentials)
			if err != nil {
				return nil, fmt.Errorf("account %d credentials: %w", a.ID, err)
			}
			creds = string(b)
		}
		notes := ""
		if a.Notes != nil {
			notes = *a.Notes
		}
		price := ""
		if a.Price.Valid {
			price = a.Price.Decimal.String()
		}

		record := []string{
			strconv.FormatInt(a.ID, 10),
			a.ClientName,
			a.Platform,
			a.AccountType,
			a.DeliveryDate.String(),
			a.ExpirationDate.String(),
			creds,
			notes,
			price,
			a.Status,
			a.CreatedAt.Format(time.RFC3339),
			a.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}


// DecodeImport accepts either {"accounts": [...]} or a bare array and
// returns the raw entries so each can fail independently.
func DecodeImport(body []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty import document")
	}

	switch trimmed[0] {
	case '[':
		var entries []json.RawMessage
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("invalid import document: %w", err)
		}
		return entries, nil
	case '{':
		var doc struct {
			Accounts []json.RawMessage `json:"accounts"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("invalid import document: %w", err)
		}
		if doc.Accounts == nil {
			return nil, fmt.Errorf("import document has no accounts array")
		}
		return doc.Accounts, nil
	}
	return nil, fmt.Errorf("import document must be an array or an object with an accounts array")
}
