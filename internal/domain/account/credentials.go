package account

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Credentials is the opaque structured access data of an account
type Credentials map[string]interface{}

// ParseCredentials normalises raw JSON into Credentials. A bare string is
// kept under the "text" key; null or absent means no credentials.
func ParseCredentials(raw json.RawMessage) (Credentials, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '{':
		var creds Credentials
		if err := json.Unmarshal(trimmed, &creds); err != nil {
			return nil, fmt.Errorf("credentials: %w", err)
		}
		return creds, nil
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, fmt.Errorf("credentials: %w", err)
		}
		return Credentials{"text": text}, nil
	default:
		return nil, fmt.Errorf("credentials must be an object or text")
	}
}

// Scan implements sql.Scanner for JSON columns
func (c *Credentials) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Credentials", src)
	}

	creds, err := ParseCredentials(raw)
	if err != nil {
		return err
	}
	*c = creds
	return nil
}

// Value implements driver.Valuer. Text is returned so JSON and JSONB columns both accept it.
func (c Credentials) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]interface{}(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
