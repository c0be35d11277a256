package account

import (
	"encoding/json"
	"testing"
)

func TestParseCredentials(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Credentials
		wantErr bool
	}{
		{name: "absent", raw: ""},
		{name: "null", raw: "null"},
		{name: "object", raw: `{"email":"a@b.c","password":"x"}`, want: Credentials{"email": "a@b.c", "password": "x"}},
		{name: "free text", raw: `"user: a / pass: b"`, want: Credentials{"text": "user: a / pass: b"}},
		{name: "number", raw: `42`, wantErr: true},
		{name: "array", raw: `["a"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCredentials(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCredentials() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseCredentials() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("ParseCredentials()[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestCredentials_ValueScan(t *testing.T) {
	in := Credentials{"email": "a@b.c", "pin": float64(1234)}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var out Credentials
	if err := out.Scan(v); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if out["email"] != "a@b.c" || out["pin"] != float64(1234) {
		t.Errorf("Scan() = %v", out)
	}

	var none Credentials
	if v, _ := none.Value(); v != nil {
		t.Errorf("nil credentials Value() = %v, want nil", v)
	}
}
