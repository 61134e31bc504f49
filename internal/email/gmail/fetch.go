package gmail

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/gmail/v1"

	"github.com/meera-nair/mailrules/internal/email"
)

// convertMessage normalizes a Gmail message. An unparseable Date header
// falls back to the provider's internal timestamp; if even that is missing
// the receive time stays zero and date rules simply won't match.
func convertMessage(msg *gmail.Message, log *logrus.Logger) email.Message {
	m := email.Message{
		ID:     msg.Id,
		Labels: msg.LabelIds,
	}

	var rawDate string
	for _, header := range msg.Payload.Headers {
		switch strings.ToLower(header.Name) {
		case "subject":
			m.Subject = header.Value
		case "from":
			m.Sender = header.Value
		case "date":
			rawDate = header.Value
		}
	}

	if rawDate != "" {
		if t, err := parseDate(rawDate); err == nil {
			m.ReceivedAt = t.UTC()
		} else {
			log.WithFields(logrus.Fields{"id": msg.Id, "date": rawDate}).
				Warn("unparseable Date header")
		}
	}
	if m.ReceivedAt.IsZero() && msg.InternalDate > 0 {
		m.ReceivedAt = time.Unix(msg.InternalDate/1000, 0).UTC()
	}

	m.IsRead = !containsLabel(msg.LabelIds, "UNREAD")
	m.Body = extractBody(msg.Payload)

	return m
}

// parseDate attempts the date formats seen in the wild
func parseDate(s string) (time.Time, error) {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}

// extractBody pulls the text/plain part of the message payload
func extractBody(payload *gmail.MessagePart) string {
	return extractPartByMime(payload, "text/plain")
}

// extractPartByMime recursively finds a part with the given MIME type
func extractPartByMime(part *gmail.MessagePart, mimeType string) string {
	if part == nil {
		return ""
	}

	if strings.HasPrefix(part.MimeType, mimeType) {
		if part.Body != nil && part.Body.Data != "" {
			decoded, err := base64.URLEncoding.DecodeString(part.Body.Data)
			if err == nil {
				return string(decoded)
			}
		}
	}

	for _, subpart := range part.Parts {
		if result := extractPartByMime(subpart, mimeType); result != "" {
			return result
		}
	}

	return ""
}

// containsLabel checks if a label is present
func containsLabel(labels []string, label string) bool {
	for _, l := range labels {
		if l == label {
			return true
		}
	}
	return false
}
