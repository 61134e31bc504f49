package rules

import (
	"strconv"
	"strings"
	"time"
)

// MatchDate evaluates a date-window operator against the message's receive
// time. Both instants are normalized to UTC before comparison; now is
// captured once per pass and passed in explicitly so a single run stays
// internally consistent. A zero emailTime (unparseable Date header) fails
// the match without aborting anything.
//
// Supported operators, matched case-insensitively by prefix:
//
//	"last N"       emailTime >= now - N days
//	"older than N" emailTime <= now - N days
//	"month"        emailTime's "January_2006" (lowered) equals value with
//	               spaces replaced by underscores, lowered
//	"year"         emailTime's 4-digit year equals value exactly
//	"equals"       emailTime's "Mon, 02 Jan 2006" equals value exactly
//
// Anything else, including a malformed day count, yields false.
func MatchDate(operator, value string, emailTime, now time.Time) bool {
	if emailTime.IsZero() {
		return false
	}

	emailTime = emailTime.UTC()
	now = now.UTC()
	operator = strings.ToLower(strings.TrimSpace(operator))

	switch {
	case strings.HasPrefix(operator, "last"):
		days, ok := dayToken(operator, 1)
		if !ok {
			return false
		}
		return !emailTime.Before(now.AddDate(0, 0, -days))

	case strings.HasPrefix(operator, "older than"):
		days, ok := dayToken(operator, 2)
		if !ok {
			return false
		}
		return !emailTime.After(now.AddDate(0, 0, -days))

	case operator == "month":
		want := strings.ToLower(strings.ReplaceAll(value, " ", "_"))
		return strings.ToLower(emailTime.Format("January_2006")) == want

	case operator == "year":
		return emailTime.Format("2006") == value

	case operator == "equals":
		return emailTime.Format("Mon, 02 Jan 2006") == value

	default:
		return false
	}
}

// dayToken parses the whitespace-separated token at index as a day count
func dayToken(operator string, index int) (int, bool) {
	tokens := strings.Fields(operator)
	if len(tokens) <= index {
		return 0, false
	}
	days, err := strconv.Atoi(tokens[index])
	if err != nil {
		return 0, false
	}
	return days, true
}
