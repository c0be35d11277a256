package account

import (
	"strings"
	"time"
)

// FilterAll is the sentinel a client sends to mean "no restriction"
const FilterAll = "all"

// Filter narrows a listing. Empty fields impose no constraint.
type Filter struct {
	// Case-insensitive substring of the client name
	Search      string
	Platform    string
	AccountType string
	Status      string
	// Applied after the store query since lifecycle depends on the clock
	Lifecycle Lifecycle
	// Reference instant for Lifecycle. Zero means the service clock.
	AsOf time.Time
}

// Normalize drops the "all" sentinel from every criterion
func (f Filter) Normalize() Filter {
	if f.Platform == FilterAll {
		f.Platform = ""
	}
	if f.AccountType == FilterAll {
		f.AccountType = ""
	}
	if f.Status == FilterAll {
		f.Status = ""
	}
	if f.Lifecycle == FilterAll {
		f.Lifecycle = ""
	}
	return f
}

// IsEmpty reports whether the filter constrains nothing
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Platform == "" && f.AccountType == "" && f.Status == "" && f.Lifecycle == ""
}

// StoreCriteria returns the part of the filter the store evaluates
func (f Filter) StoreCriteria() Filter {
	f.Lifecycle = ""
	f.AsOf = time.Time{}
	return f
}

// Matches reports whether a satisfies the store criteria of f
func (f Filter) Matches(a *Account) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(a.ClientName), strings.ToLower(f.Search)) {
		return false
	}
	if f.Platform != "" && a.Platform != f.Platform {
		return false
	}
	if f.AccountType != "" && a.AccountType != f.AccountType {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	return true
}

// FilterByLifecycle keeps the accounts in state l. An empty l keeps everything.
func FilterByLifecycle(accounts []*Account, l Lifecycle, now time.Time) []*Account {
	if l == "" {
		return accounts
	}
	kept := make([]*Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Lifecycle(now) == l {
			kept = append(kept, a)
		}
	}
	return kept
}
