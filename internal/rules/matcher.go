package rules

import (
	"time"

	"github.com/meera-nair/mailrules/internal/email"
)

// Match reports whether the rule matches the message. Each condition is
// dispatched on its field: From and Subject go to the string evaluator,
// ReceivedDate to the date-window evaluator, and unknown fields contribute
// false. Results are combined per the rule's predicate. A rule with no
// conditions never matches.
func Match(rule Rule, msg *email.Message, now time.Time) bool {
	if len(rule.Conditions) == 0 {
		return false
	}

	results := make([]bool, 0, len(rule.Conditions))
	for _, cond := range rule.Conditions {
		results = append(results, matchCondition(cond, msg, now))
	}

	if rule.Predicate == PredicateAll {
		return allOf(results)
	}
	return anyOf(results)
}

func matchCondition(cond Condition, msg *email.Message, now time.Time) bool {
	switch cond.Field {
	case FieldFrom:
		return MatchText(cond.Operator, cond.Values, msg.Sender)
	case FieldSubject:
		return MatchText(cond.Operator, cond.Values, msg.Subject)
	case FieldReceivedDate:
		value := ""
		if len(cond.Values) > 0 {
			value = cond.Values[0]
		}
		return MatchDate(cond.Operator, value, msg.ReceivedAt, now)
	default:
		return false
	}
}

func allOf(results []bool) bool {
	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

func anyOf(results []bool) bool {
	for _, r := range results {
		if r {
			return true
		}
	}
	return false
}
