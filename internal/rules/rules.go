package rules

import "strings"

// Field identifies which message attribute a condition tests
type Field int

const (
	FieldUnknown Field = iota
	FieldFrom
	FieldSubject
	FieldReceivedDate
)

// ParseField normalizes a rule-file field name. Unknown names map to
// FieldUnknown, which never matches.
func ParseField(s string) Field {
	normalized := strings.ToLower(s)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "_", "")

	switch normalized {
	case "from":
		return FieldFrom
	case "subject":
		return FieldSubject
	case "receiveddate":
		return FieldReceivedDate
	default:
		return FieldUnknown
	}
}

// String returns the canonical field name
func (f Field) String() string {
	switch f {
	case FieldFrom:
		return "From"
	case FieldSubject:
		return "Subject"
	case FieldReceivedDate:
		return "ReceivedDate"
	default:
		return "Unknown"
	}
}

// Predicate determines how a rule's condition results are combined
type Predicate string

const (
	PredicateAll Predicate = "ALL"
	PredicateAny Predicate = "ANY"
)

// ParsePredicate returns the predicate for s, defaulting to ANY for
// absent or unrecognized values.
func ParsePredicate(s string) Predicate {
	if strings.ToUpper(strings.TrimSpace(s)) == string(PredicateAll) {
		return PredicateAll
	}
	return PredicateAny
}

// Condition is one atomic test of a message field against one or more
// candidate values. Multiple values have OR semantics.
type Condition struct {
	Field    Field
	Operator string
	Values   []string
}

// Rule combines ordered conditions via a predicate and names the action to
// take on a match. Rules are evaluated in file order and every matching
// rule fires.
type Rule struct {
	Predicate  Predicate
	Conditions []Condition
	Action     Action
}

// Action is a closed set of mailbox mutations a matched rule can request.
type Action interface {
	isAction()
}

// MarkAsRead removes the unread marker from the message
type MarkAsRead struct{}

// Archive removes the message from the inbox
type Archive struct{}

// MoveTo files the message under a folder. System folder names map to
// predefined labels; anything else is treated as a user label.
type MoveTo struct {
	Folder string
}

// CreateLabel ensures the label exists and applies it to the message
type CreateLabel struct {
	Label string
}

func (MarkAsRead) isAction()  {}
func (Archive) isAction()     {}
func (MoveTo) isAction()      {}
func (CreateLabel) isAction() {}

// systemLabels are the provider-defined labels MoveTo may target directly.
// Label names are canonicalized to uppercase before lookup.
var systemLabels = map[string]string{
	"SPAM":      "SPAM",
	"TRASH":     "TRASH",
	"IMPORTANT": "IMPORTANT",
	"INBOX":     "INBOX",
}
