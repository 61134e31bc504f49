package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meera-nair/mailrules/internal/email"
)

// InsertEmails stores a fetched batch in one transaction. Messages whose
// gmail_id is already present are skipped, so repeated fetches do not
// duplicate rows. Returns the number of newly inserted rows.
func (db *DB) InsertEmails(ctx context.Context, msgs []email.Message) (int, error) {
	inserted := 0

	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO emails (gmail_id, sender, subject, body, folder, received_date, read_status)
			VALUES (?, ?, ?, ?, 'Inbox', ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, m := range msgs {
			var received interface{}
			if !m.ReceivedAt.IsZero() {
				received = m.ReceivedAt.UTC()
			}

			result, err := stmt.ExecContext(ctx, m.ID, m.Sender, m.Subject, m.Body, received, m.IsRead)
			if err != nil {
				return fmt.Errorf("insert %s: %w", m.ID, err)
			}
			if rows, _ := result.RowsAffected(); rows > 0 {
				inserted++
			}
		}
		return nil
	})

	return inserted, err
}

// ListEmails retrieves stored emails, newest first
func (db *DB) ListEmails(ctx context.Context, opts ListOptions) ([]StoredEmail, error) {
	query := `
		SELECT id, gmail_id, sender, subject, body, folder, received_date, read_status, processed_at
		FROM emails WHERE 1=1
	`
	args := []interface{}{}

	if opts.ReadStatus != nil {
		query += " AND read_status = ?"
		args = append(args, *opts.ReadStatus)
	}

	query += " ORDER BY received_date DESC"

	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []StoredEmail
	for rows.Next() {
		var e StoredEmail
		var subject, body sql.NullString
		var received sql.NullTime

		if err := rows.Scan(&e.ID, &e.GmailID, &e.Sender, &subject, &body,
			&e.Folder, &received, &e.ReadStatus, &e.ProcessedAt); err != nil {
			return nil, err
		}

		e.Subject = subject.String
		e.Body = body.String
		if received.Valid {
			e.ReceivedDate = received.Time
		}
		emails = append(emails, e)
	}

	return emails, rows.Err()
}

// MarkRead flips the stored read status for the given gmail ids
func (db *DB) MarkRead(ctx context.Context, gmailIDs []string) error {
	if len(gmailIDs) == 0 {
		return nil
	}

	return db.Transaction(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `UPDATE emails SET read_status = 1 WHERE gmail_id = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, id := range gmailIDs {
			if _, err := stmt.ExecContext(ctx, id); err != nil {
				return fmt.Errorf("mark read %s: %w", id, err)
			}
		}
		return nil
	})
}

// RecordRun persists the audit record of one processing pass
func (db *DB) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, processed, matched, dry_run)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt, run.Processed, run.Matched, run.DryRun)
	return err
}

// ListRuns retrieves recent processing passes, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, processed, matched, dry_run FROM runs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Processed, &r.Matched, &r.DryRun); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Fetch satisfies email.Source with the stored unread messages, so a
// processing pass can run against the local copy instead of the live
// mailbox.
func (db *DB) Fetch(ctx context.Context, limit int) ([]email.Message, error) {
	unread := false
	stored, err := db.ListEmails(ctx, ListOptions{ReadStatus: &unread, Limit: limit})
	if err != nil {
		return nil, err
	}

	msgs := make([]email.Message, 0, len(stored))
	for i := range stored {
		msgs = append(msgs, stored[i].Message())
	}
	return msgs, nil
}
