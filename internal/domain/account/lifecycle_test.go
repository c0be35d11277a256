package account

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       Lifecycle
	}{
		{"one second ago", now.Add(-time.Second), LifecycleExpired},
		{"last month", now.AddDate(0, -1, 0), LifecycleExpired},
		{"exactly now", now, LifecycleExpiring},
		{"tomorrow", now.Add(24 * time.Hour), LifecycleExpiring},
		{"window edge", now.Add(ExpiringWindow), LifecycleExpiring},
		{"just past window", now.Add(ExpiringWindow + time.Second), LifecycleActive},
		{"next year", now.AddDate(1, 0, 0), LifecycleActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.expiration, now); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"same instant", now, 0},
		{"half a day ahead", now.Add(12 * time.Hour), 1},
		{"exactly one day", now.Add(24 * time.Hour), 1},
		{"one day and a second", now.Add(24*time.Hour + time.Second), 2},
		{"one second overdue", now.Add(-time.Second), 0},
		{"a day and a half overdue", now.Add(-36 * time.Hour), -1},
		{"three days overdue", now.Add(-72 * time.Hour), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysRemaining(tt.expiration, now); got != tt.want {
				t.Errorf("DaysRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDescribeRemaining(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-5, "5 days overdue"},
		{-1, "1 day overdue"},
		{0, "due today"},
		{1, "1 day"},
		{30, "30 days"},
	}

	for _, tt := range tests {
		if got := DescribeRemaining(tt.days); got != tt.want {
			t.Errorf("DescribeRemaining(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestParseLifecycle(t *testing.T) {
	for _, l := range Lifecycles {
		got, err := ParseLifecycle(string(l))
		if err != nil || got != l {
			t.Errorf("ParseLifecycle(%q) = %v, %v", l, got, err)
		}
	}

	if _, err := ParseLifecycle("dormant"); err == nil {
		t.Error("ParseLifecycle() expected error for unknown state")
	}
}
