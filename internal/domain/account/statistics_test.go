package account

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)

	accounts := []*Account{
		{ID: 1, ExpirationDate: NewDate(2024, 3, 9)},  // expired
		{ID: 2, ExpirationDate: NewDate(2024, 3, 10)}, // expiring, same day
		{ID: 3, ExpirationDate: NewDate(2024, 3, 17)}, // expiring, window edge
		{ID: 4, ExpirationDate: NewDate(2024, 3, 18)}, // active
		{ID: 5, ExpirationDate: NewDate(2025, 1, 1)},  // active
	}

	got := Summarize(accounts, now)
	want := Statistics{Total: 5, Active: 2, Expiring: 2, Expired: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}

	if got.Active+got.Expiring+got.Expired != got.Total {
		t.Errorf("states do not partition total: %+v", got)
	}
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil, time.Now())
	if got != (Statistics{}) {
		t.Errorf("Summarize(nil) = %+v, want zero", got)
	}
}
