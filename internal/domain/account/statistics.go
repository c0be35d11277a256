package account

import "time"

// Statistics counts accounts per lifecycle state
type Statistics struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Expiring int `json:"expiring"`
	Expired  int `json:"expired"`
}

// Add counts one account in state l
func (s *Statistics) Add(l Lifecycle) {
	s.Total++
	switch l {
	case LifecycleExpired:
		s.Expired++
	case LifecycleExpiring:
		s.Expiring++
	default:
		s.Active++
	}
}

// Summarize classifies every account against now
func Summarize(accounts []*Account, now time.Time) Statistics {
	var stats Statistics
	for _, a := range accounts {
		stats.Add(a.Lifecycle(now))
	}
	return stats
}
