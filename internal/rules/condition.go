package rules

import "strings"

// MatchText evaluates a string operator against the given field content.
// Comparisons are case-insensitive and any value in values matching is
// sufficient. Empty text, an empty value list, or an unknown operator all
// yield false: malformed rule files degrade silently rather than aborting
// a run.
func MatchText(operator string, values []string, text string) bool {
	if text == "" || len(values) == 0 {
		return false
	}

	text = strings.ToLower(text)

	switch strings.ToLower(operator) {
	case "contains":
		return anyValue(values, func(v string) bool { return strings.Contains(text, v) })
	case "startswith":
		return anyValue(values, func(v string) bool { return strings.HasPrefix(text, v) })
	case "endswith":
		return anyValue(values, func(v string) bool { return strings.HasSuffix(text, v) })
	case "equals":
		return anyValue(values, func(v string) bool { return text == v })
	case "noreply":
		// Ignores values entirely
		return strings.Contains(text, "noreply") || strings.Contains(text, "no-reply")
	default:
		return false
	}
}

// anyValue reports whether test passes for any lowercased candidate value
func anyValue(values []string, test func(string) bool) bool {
	for _, v := range values {
		if test(strings.ToLower(v)) {
			return true
		}
	}
	return false
}
