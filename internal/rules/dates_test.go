package rules

import (
	"testing"
	"time"
)

func TestMatchDate_Windows(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		operator  string
		value     string
		emailTime time.Time
		want      bool
	}{
		{
			name:      "last 7 includes recent",
			operator:  "last 7",
			emailTime: now.AddDate(0, 0, -3),
			want:      true,
		},
		{
			name:      "last 7 excludes older",
			operator:  "last 7",
			emailTime: now.AddDate(0, 0, -10),
			want:      false,
		},
		{
			name:      "last boundary is inclusive",
			operator:  "last 7",
			emailTime: now.AddDate(0, 0, -7),
			want:      true,
		},
		{
			name:      "older than 30 includes old",
			operator:  "older than 30",
			emailTime: now.AddDate(0, 0, -40),
			want:      true,
		},
		{
			name:      "older than 30 excludes recent",
			operator:  "older than 30",
			emailTime: now.AddDate(0, 0, -5),
			want:      false,
		},
		{
			name:      "last with garbage day count",
			operator:  "last seven",
			emailTime: now.AddDate(0, 0, -1),
			want:      false,
		},
		{
			name:      "last with missing day count",
			operator:  "last",
			emailTime: now.AddDate(0, 0, -1),
			want:      false,
		},
		{
			name:      "older than with missing third token",
			operator:  "older than",
			emailTime: now.AddDate(0, 0, -40),
			want:      false,
		},
		{
			name:      "operator case-insensitive",
			operator:  "LAST 7",
			emailTime: now.AddDate(0, 0, -3),
			want:      true,
		},
		{
			name:      "unknown operator",
			operator:  "between",
			value:     "whatever",
			emailTime: now,
			want:      false,
		},
		{
			name:      "zero email time never matches",
			operator:  "last 7",
			emailTime: time.Time{},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchDate(tt.operator, tt.value, tt.emailTime, now)
			if got != tt.want {
				t.Errorf("MatchDate(%q, %q) = %v, want %v", tt.operator, tt.value, got, tt.want)
			}
		})
	}
}

func TestMatchDate_CalendarForms(t *testing.T) {
	emailTime := time.Date(2024, time.March, 3, 9, 30, 0, 0, time.UTC)
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		operator string
		value    string
		want     bool
	}{
		{name: "month match", operator: "month", value: "March 2024", want: true},
		{name: "month match is case-insensitive", operator: "month", value: "march 2024", want: true},
		{name: "month wrong year", operator: "month", value: "March 2023", want: false},
		{name: "month wrong month", operator: "month", value: "April 2024", want: false},
		{name: "year match", operator: "year", value: "2024", want: true},
		{name: "year no match", operator: "year", value: "2023", want: false},
		{name: "year is exact string compare", operator: "year", value: "24", want: false},
		{name: "equals exact day", operator: "equals", value: "Sun, 03 Mar 2024", want: true},
		{name: "equals wrong format", operator: "equals", value: "2024-03-03", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchDate(tt.operator, tt.value, emailTime, now)
			if got != tt.want {
				t.Errorf("MatchDate(%q, %q) = %v, want %v", tt.operator, tt.value, got, tt.want)
			}
		})
	}
}

func TestMatchDate_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// 01:00 IST on June 16 is still June 15 in UTC
	emailTime := time.Date(2024, time.June, 16, 1, 0, 0, 0, loc)
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	if !MatchDate("equals", "Sat, 15 Jun 2024", emailTime, now) {
		t.Error("expected zoned email time to be compared in UTC")
	}
}
