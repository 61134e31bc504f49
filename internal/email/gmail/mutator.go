package gmail

import (
	"context"
	"fmt"

	"google.golang.org/api/gmail/v1"

	"github.com/meera-nair/mailrules/internal/rules"
)

// Mutator applies label and marker mutations through the Gmail API. It
// implements rules.Mutator.
type Mutator struct {
	service *gmail.Service
}

// RemoveMarker strips a system marker (UNREAD, INBOX) from the message
func (m *Mutator) RemoveMarker(ctx context.Context, messageID string, marker rules.Marker) error {
	_, err := m.service.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{string(marker)},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("remove %s from %s: %w", marker, messageID, err)
	}
	return nil
}

// AddLabel attaches a label id to the message
func (m *Mutator) AddLabel(ctx context.Context, messageID, labelID string) error {
	_, err := m.service.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("add label %s to %s: %w", labelID, messageID, err)
	}
	return nil
}

// ListLabels returns the mailbox's labels as a name to id mapping
func (m *Mutator) ListLabels(ctx context.Context) (map[string]string, error) {
	resp, err := m.service.Users.Labels.List("me").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}

	labels := make(map[string]string, len(resp.Labels))
	for _, l := range resp.Labels {
		labels[l.Name] = l.Id
	}
	return labels, nil
}

// CreateLabel creates a user label and returns its provider-assigned id
func (m *Mutator) CreateLabel(ctx context.Context, name string) (string, error) {
	created, err := m.service.Users.Labels.Create("me", &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create label %q: %w", name, err)
	}
	return created.Id, nil
}
