package account

import (
	"fmt"
	"time"
)

// Lifecycle is the computed state of an account relative to a reference instant
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "active"
	LifecycleExpiring Lifecycle = "expiring"
	LifecycleExpired  Lifecycle = "expired"
)

// ExpiringWindow is how far ahead of expiration an account counts as expiring
const ExpiringWindow = 7 * 24 * time.Hour

const day = 24 * time.Hour

// Lifecycles lists every state in display order
var Lifecycles = []Lifecycle{LifecycleActive, LifecycleExpiring, LifecycleExpired}

// ParseLifecycle parses a lifecycle name
func ParseLifecycle(s string) (Lifecycle, error) {
	switch l := Lifecycle(s); l {
	case LifecycleActive, LifecycleExpiring, LifecycleExpired:
		return l, nil
	}
	return "", fmt.Errorf("unknown lifecycle %q", s)
}

// Classify returns expired when expiration is before now, expiring when it
// falls within ExpiringWindow of now (both ends inclusive), and active otherwise.
func Classify(expiration, now time.Time) Lifecycle {
	if expiration.Before(now) {
		return LifecycleExpired
	}
	if !expiration.After(now.Add(ExpiringWindow)) {
		return LifecycleExpiring
	}
	return LifecycleActive
}

// DaysRemaining is the ceiling of the whole days between now and expiration.
// It is negative once the account is overdue.
func DaysRemaining(expiration, now time.Time) int {
	diff := expiration.Sub(now)
	days := diff / day
	if diff%day > 0 {
		days++
	}
	return int(days)
}

// DescribeRemaining renders a DaysRemaining result for display
func DescribeRemaining(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days overdue", -days)
	case days == -1:
		return "1 day overdue"
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
