package database

import (
	"time"

	"github.com/meera-nair/mailrules/internal/email"
)

// StoredEmail is one fetched message persisted locally
type StoredEmail struct {
	ID           int64     `json:"id"`
	GmailID      string    `json:"gmail_id"`
	Sender       string    `json:"sender"`
	Subject      string    `json:"subject"`
	Body         string    `json:"-"`
	Folder       string    `json:"folder"`
	ReceivedDate time.Time `json:"received_date"`
	ReadStatus   bool      `json:"read_status"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// Message converts a stored row back to the normalized message form
func (s *StoredEmail) Message() email.Message {
	return email.Message{
		ID:         s.GmailID,
		Sender:     s.Sender,
		Subject:    s.Subject,
		ReceivedAt: s.ReceivedDate,
		Body:       s.Body,
		IsRead:     s.ReadStatus,
	}
}

// Run is the audit record of one processing pass
type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Processed int       `json:"processed"`
	Matched   int       `json:"matched"`
	DryRun    bool      `json:"dry_run"`
}

// ListOptions filters stored email listings
type ListOptions struct {
	ReadStatus *bool // nil means both read and unread
	Limit      int
}
