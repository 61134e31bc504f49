package email

import (
	"strings"
	"time"
)

// Message is a provider-agnostic view of one mail message. Immutable once
// fetched; the processing pass owns it for the duration of one run.
type Message struct {
	ID         string    // Provider-specific ID
	Sender     string    // Raw From header value
	Subject    string    // Subject header value
	ReceivedAt time.Time // Receive time in UTC; zero when the Date header was unusable
	Body       string    // Plain-text body (may be empty)
	IsRead     bool      // Read status at fetch time
	Labels     []string  // Provider label ids attached at fetch time
}

// Address represents an email address with optional display name
type Address struct {
	Name  string
	Email string
}

// String returns the formatted address
func (a Address) String() string {
	if a.Name == "" {
		return a.Email
	}
	return a.Name + " <" + a.Email + ">"
}

// Domain extracts the domain from the email address
func (a Address) Domain() string {
	parts := strings.Split(a.Email, "@")
	if len(parts) != 2 {
		return ""
	}
	return strings.ToLower(parts[1])
}

// From parses the message's raw sender header into an Address
func (m *Message) From() Address {
	return ParseAddress(m.Sender)
}

// ParseAddress parses an address string like "Name <email@example.com>"
func ParseAddress(s string) Address {
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "<"); start != -1 {
		if end := strings.Index(s, ">"); end > start {
			return Address{
				Name:  strings.TrimSpace(s[:start]),
				Email: strings.TrimSpace(s[start+1 : end]),
			}
		}
	}

	return Address{Email: s}
}
