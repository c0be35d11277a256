package account

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/streamvault/internal/pkg/validator"
)

// Rules are the deployment-tunable validation rules
type Rules struct {
	// Reject accounts whose expiration date precedes their delivery date
	EnforceDateOrder bool
}

// Input is the creation contract shared by the create endpoint and import
type Input struct {
	ClientName     string          `json:"clientName" validate:"notblank"`
	Platform       string          `json:"platform" validate:"notblank"`
	AccountType    string          `json:"accountType" validate:"notblank"`
	DeliveryDate   string          `json:"deliveryDate" validate:"required,calendardate"`
	ExpirationDate string          `json:"expirationDate" validate:"required,calendardate"`
	Credentials    json.RawMessage `json:"credentials,omitempty" swaggertype:"object"`
	Notes          *string         `json:"notes,omitempty"`
	Price          json.RawMessage `json:"price,omitempty" swaggertype:"string"`
	Status         string          `json:"status,omitempty"`
}

// UpdateInput is a partial update. Absent fields are left unchanged; an
// explicit null clears credentials, notes or price.
type UpdateInput struct {
	ClientName     *string         `json:"clientName,omitempty" validate:"omitnil,notblank"`
	Platform       *string         `json:"platform,omitempty" validate:"omitnil,notblank"`
	AccountType    *string         `json:"accountType,omitempty" validate:"omitnil,notblank"`
	DeliveryDate   *string         `json:"deliveryDate,omitempty" validate:"omitnil,calendardate"`
	ExpirationDate *string         `json:"expirationDate,omitempty" validate:"omitnil,calendardate"`
	Credentials    json.RawMessage `json:"credentials,omitempty" swaggertype:"object"`
	Notes          json.RawMessage `json:"notes,omitempty" swaggertype:"string"`
	Price          json.RawMessage `json:"price,omitempty" swaggertype:"string"`
	Status         *string         `json:"status,omitempty" validate:"omitnil,notblank"`
}

// ToAccount validates the input and builds the account it describes.
// The returned account has no ID or timestamps yet.
func (in Input) ToAccount(v *validator.Validator, rules Rules) (*Account, []validator.ValidationError) {
	errs := v.Validate(in)

	creds, err := ParseCredentials(in.Credentials)
	if err != nil {
		errs = append(errs, fieldError("credentials", "credentials", err.Error()))
	}

	price, priceErr := parsePrice(in.Price)
	if priceErr != nil {
		errs = append(errs, *priceErr)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// Both dates already passed calendardate
	delivery, _ := ParseDate(in.DeliveryDate)
	expiration, _ := ParseDate(in.ExpirationDate)
	if rules.EnforceDateOrder && expiration.Before(delivery) {
		return nil, []validator.ValidationError{dateOrderError()}
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = StatusActive
	}

	return &Account{
		ClientName:     in.ClientName,
		Platform:       in.Platform,
		AccountType:    in.AccountType,
		DeliveryDate:   delivery,
		ExpirationDate: expiration,
		Credentials:    creds,
		Notes:          in.Notes,
		Price:          price,
		Status:         status,
	}, nil
}

// ToPatch validates the update and converts it to a Patch
func (in UpdateInput) ToPatch(v *validator.Validator) (Patch, []validator.ValidationError) {
	errs := v.Validate(in)

	patch := Patch{
		ClientName:  in.ClientName,
		Platform:    in.Platform,
		AccountType: in.AccountType,
		Status:      in.Status,
	}

	if len(in.Credentials) > 0 {
		creds, err := ParseCredentials(in.Credentials)
		if err != nil {
			errs = append(errs, fieldError("credentials", "credentials", err.Error()))
		} else {
			patch.Credentials = &creds
		}
	}

	if len(in.Notes) > 0 {
		notes, ok := parseNullableString(in.Notes)
		if !ok {
			errs = append(errs, fieldError("notes", "string", "notes must be text or null"))
		} else {
			patch.Notes = &notes
		}
	}

	if len(in.Price) > 0 {
		price, priceErr := parsePrice(in.Price)
		if priceErr != nil {
			errs = append(errs, *priceErr)
		} else {
			patch.Price = &price
		}
	}

	if len(errs) > 0 {
		return Patch{}, errs
	}

	if in.DeliveryDate != nil {
		d, _ := ParseDate(*in.DeliveryDate)
		patch.DeliveryDate = &d
	}
	if in.ExpirationDate != nil {
		d, _ := ParseDate(*in.ExpirationDate)
		patch.ExpirationDate = &d
	}

	return patch, nil
}

// CheckDateOrder validates the dates of an account after a patch is applied
func CheckDateOrder(a Account, rules Rules) []validator.ValidationError {
	if rules.EnforceDateOrder && a.ExpirationDate.Before(a.DeliveryDate) {
		return []validator.ValidationError{dateOrderError()}
	}
	return nil
}

func dateOrderError() validator.ValidationError {
	return fieldError("expirationDate", "gtefield", "expirationDate must not be before deliveryDate")
}

func fieldError(field, tag, msg string) validator.ValidationError {
	return validator.ValidationError{Field: field, Tag: tag, Message: msg}
}

// parsePrice accepts a JSON number, a numeric string or null
func parsePrice(raw json.RawMessage) (decimal.NullDecimal, *validator.ValidationError) {
	var price decimal.NullDecimal
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return price, nil
	}
	if bytes.Equal(trimmed, []byte(`""`)) {
		return price, nil
	}
	if err := price.UnmarshalJSON(trimmed); err != nil {
		fe := fieldError("price", "decimal", "price must be a decimal number")
		fe.Value = string(trimmed)
		return price, &fe
	}
	if price.Valid && price.Decimal.IsNegative() {
		fe := fieldError("price", "gte", "price must be greater than or equal to 0")
		fe.Value = price.Decimal.String()
		return decimal.NullDecimal{}, &fe
	}
	return price, nil
}

func parseNullableString(raw json.RawMessage) (sql.NullString, bool) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return sql.NullString{}, true
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return sql.NullString{}, false
	}
	return sql.NullString{String: s, Valid: true}, true
}
