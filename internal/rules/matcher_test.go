package rules

import (
	"testing"
	"time"

	"github.com/meera-nair/mailrules/internal/email"
)

func TestMatch_Predicates(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	msg := &email.Message{
		ID:         "m1",
		Sender:     "news@newsletter.com",
		Subject:    "Weekly Update",
		ReceivedAt: now.AddDate(0, 0, -2),
	}

	// First condition matches, second does not
	conditions := []Condition{
		{Field: FieldFrom, Operator: "contains", Values: []string{"newsletter"}},
		{Field: FieldSubject, Operator: "contains", Values: []string{"invoice"}},
	}

	tests := []struct {
		name string
		rule Rule
		want bool
	}{
		{
			name: "ALL with mixed results does not match",
			rule: Rule{Predicate: PredicateAll, Conditions: conditions},
			want: false,
		},
		{
			name: "ANY with mixed results matches",
			rule: Rule{Predicate: PredicateAny, Conditions: conditions},
			want: true,
		},
		{
			name: "ALL with all true matches",
			rule: Rule{
				Predicate: PredicateAll,
				Conditions: []Condition{
					{Field: FieldFrom, Operator: "contains", Values: []string{"newsletter"}},
					{Field: FieldReceivedDate, Operator: "last 7"},
				},
			},
			want: true,
		},
		{
			name: "empty conditions never match",
			rule: Rule{Predicate: PredicateAny},
			want: false,
		},
		{
			name: "unknown field contributes false",
			rule: Rule{
				Predicate: PredicateAll,
				Conditions: []Condition{
					{Field: FieldFrom, Operator: "contains", Values: []string{"newsletter"}},
					{Field: FieldUnknown, Operator: "contains", Values: []string{"x"}},
				},
			},
			want: false,
		},
		{
			name: "date condition uses first value",
			rule: Rule{
				Predicate: PredicateAny,
				Conditions: []Condition{
					{Field: FieldReceivedDate, Operator: "month", Values: []string{"June 2024"}},
				},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(tt.rule, msg, now)
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in   string
		want Field
	}{
		{"From", FieldFrom},
		{"from", FieldFrom},
		{"Subject", FieldSubject},
		{"received date", FieldReceivedDate},
		{"Received Date", FieldReceivedDate},
		{"received_date", FieldReceivedDate},
		{"ReceivedDate", FieldReceivedDate},
		{"body", FieldUnknown},
	}

	for _, tt := range tests {
		if got := ParseField(tt.in); got != tt.want {
			t.Errorf("ParseField(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParsePredicate(t *testing.T) {
	tests := []struct {
		in   string
		want Predicate
	}{
		{"ALL", PredicateAll},
		{"all", PredicateAll},
		{"ANY", PredicateAny},
		{"", PredicateAny},
		{"bogus", PredicateAny},
	}

	for _, tt := range tests {
		if got := ParsePredicate(tt.in); got != tt.want {
			t.Errorf("ParsePredicate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
