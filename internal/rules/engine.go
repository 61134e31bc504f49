package rules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meera-nair/mailrules/internal/email"
)

// Marker is a provider flag the mutator can strip from a message
type Marker string

const (
	MarkerUnread Marker = "UNREAD"
	MarkerInbox  Marker = "INBOX"
)

// Mutator is the narrow mailbox surface the engine mutates through. All
// calls are synchronous and may fail; failures are per-action, never fatal
// to a pass.
type Mutator interface {
	RemoveMarker(ctx context.Context, messageID string, marker Marker) error
	AddLabel(ctx context.Context, messageID, labelID string) error
	ListLabels(ctx context.Context) (map[string]string, error)
	CreateLabel(ctx context.Context, name string) (string, error)
}

// Result aggregates one processing pass
type Result struct {
	Processed  int      // messages examined
	Matched    int      // rule matches across all messages
	MarkedRead []string // ids that had their unread marker removed
}

// Session owns the state of one processing pass: the label cache, the
// wall-clock instant the pass runs against, and the match counters. It must
// not be shared across concurrent passes.
type Session struct {
	mutator Mutator
	labels  map[string]string // uppercased label name -> provider id
	log     *logrus.Logger
	now     time.Time
	dryRun  bool
}

// NewSession prepares a pass against the given mailbox. The label cache is
// seeded once from the mailbox's existing labels; a seed failure is logged
// and leaves the cache empty, so labels are simply recreated on demand.
func NewSession(ctx context.Context, mutator Mutator, log *logrus.Logger, dryRun bool) *Session {
	s := &Session{
		mutator: mutator,
		labels:  make(map[string]string),
		log:     log,
		now:     time.Now().UTC(),
		dryRun:  dryRun,
	}

	existing, err := mutator.ListLabels(ctx)
	if err != nil {
		log.WithError(err).Error("failed to list existing labels, starting with empty cache")
		return s
	}
	for name, id := range existing {
		s.labels[strings.ToUpper(name)] = id
	}
	log.WithField("labels", len(s.labels)).Debug("seeded label cache")

	return s
}

// Process evaluates every rule against every message in source order. There
// is no short-circuit: a message may match and fire actions for several
// rules, and each match increments the matched count. Per-message and
// per-action failures are logged and skipped; Process always completes.
func (s *Session) Process(ctx context.Context, msgs []email.Message, loaded []Rule) Result {
	result := Result{Processed: len(msgs)}

	for i := range msgs {
		msg := &msgs[i]
		entry := s.log.WithFields(logrus.Fields{
			"id":      msg.ID,
			"from":    msg.Sender,
			"subject": msg.Subject,
		})

		matchedAny := false
		for ri, rule := range loaded {
			// Rules without conditions never match
			if len(rule.Conditions) == 0 {
				continue
			}
			if !Match(rule, msg, s.now) {
				continue
			}

			matchedAny = true
			result.Matched++
			entry.WithFields(logrus.Fields{
				"rule":      ri + 1,
				"predicate": rule.Predicate,
				"action":    Describe(rule.Action),
			}).Info("rule matched")

			if s.apply(ctx, msg.ID, rule.Action, entry) {
				if _, ok := rule.Action.(MarkAsRead); ok {
					result.MarkedRead = append(result.MarkedRead, msg.ID)
				}
			}
		}

		if !matchedAny {
			entry.Debug("no rules matched")
		}
	}

	return result
}

// apply dispatches one action against the mutator and reports whether it
// took effect. Mutator failures are logged and abandoned; the pass moves on.
func (s *Session) apply(ctx context.Context, messageID string, action Action, entry *logrus.Entry) bool {
	if action == nil {
		entry.Warn("matched rule has no usable action")
		return false
	}

	if s.dryRun {
		entry.WithField("action", Describe(action)).Info("dry-run, skipping action")
		return false
	}

	var err error
	switch a := action.(type) {
	case MarkAsRead:
		err = s.mutator.RemoveMarker(ctx, messageID, MarkerUnread)
	case Archive:
		err = s.mutator.RemoveMarker(ctx, messageID, MarkerInbox)
	case MoveTo:
		if systemID, ok := systemLabels[strings.ToUpper(a.Folder)]; ok {
			err = s.mutator.AddLabel(ctx, messageID, systemID)
		} else {
			err = s.applyLabel(ctx, messageID, a.Folder)
		}
	case CreateLabel:
		err = s.applyLabel(ctx, messageID, a.Label)
	}

	if err != nil {
		entry.WithError(err).WithField("action", Describe(action)).Error("action failed")
		return false
	}
	entry.WithField("action", Describe(action)).Info("action applied")
	return true
}

// applyLabel ensures a user label exists and attaches it to the message.
// Names are canonicalized to uppercase before any cache lookup or mutation,
// and a cached label is never recreated within a session.
func (s *Session) applyLabel(ctx context.Context, messageID, name string) error {
	key := strings.ToUpper(name)

	labelID, ok := s.labels[key]
	if !ok {
		created, err := s.mutator.CreateLabel(ctx, name)
		if err != nil {
			return fmt.Errorf("create label %q: %w", name, err)
		}
		s.labels[key] = created
		labelID = created
		s.log.WithFields(logrus.Fields{"label": name, "id": created}).Info("created label")
	}

	return s.mutator.AddLabel(ctx, messageID, labelID)
}

// Describe renders an action for logs and reports
func Describe(action Action) string {
	switch a := action.(type) {
	case MarkAsRead:
		return "mark as read"
	case Archive:
		return "archive"
	case MoveTo:
		return "move to " + a.Folder
	case CreateLabel:
		return "apply label " + a.Label
	default:
		return "none"
	}
}
