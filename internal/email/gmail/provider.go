package gmail

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/meera-nair/mailrules/internal/email"
)

// Provider fetches messages from a Gmail account and exposes a mutator over
// the same connection. It satisfies email.Source.
type Provider struct {
	credPath  string
	tokenPath string
	service   *gmail.Service
	userEmail string
	log       *logrus.Logger
}

// New creates a new Gmail provider
func New(credPath, tokenPath string, log *logrus.Logger) *Provider {
	return &Provider{
		credPath:  credPath,
		tokenPath: tokenPath,
		log:       log,
	}
}

// IsAuthenticated checks if a valid token exists
func (p *Provider) IsAuthenticated() bool {
	_, err := loadToken(p.tokenPath)
	return err == nil
}

// Authenticate performs OAuth authentication and resolves the user profile
func (p *Provider) Authenticate(ctx context.Context) error {
	config, err := loadCredentials(p.credPath)
	if err != nil {
		return err
	}

	client, err := getClient(ctx, config, p.tokenPath)
	if err != nil {
		return fmt.Errorf("failed to get OAuth client: %w", err)
	}

	service, err := gmail.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("failed to create Gmail service: %w", err)
	}

	p.service = service

	profile, err := service.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to get user profile: %w", err)
	}

	p.userEmail = profile.EmailAddress
	p.log.WithField("user", p.userEmail).Info("authenticated with Gmail")
	return nil
}

// UserEmail returns the authenticated user's email address
func (p *Provider) UserEmail() (string, error) {
	if p.userEmail == "" {
		return "", fmt.Errorf("not authenticated")
	}
	return p.userEmail, nil
}

// Fetch retrieves up to limit recent messages in mailbox order
func (p *Provider) Fetch(ctx context.Context, limit int) ([]email.Message, error) {
	if p.service == nil {
		return nil, fmt.Errorf("not authenticated - call Authenticate() first")
	}

	var msgs []email.Message
	pageToken := ""

	for {
		req := p.service.Users.Messages.List("me").
			MaxResults(int64(min(limit-len(msgs), 100)))

		if pageToken != "" {
			req = req.PageToken(pageToken)
		}

		resp, err := req.Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list messages: %w", err)
		}

		for _, m := range resp.Messages {
			full, err := p.service.Users.Messages.Get("me", m.Id).
				Format("full").
				Context(ctx).
				Do()
			if err != nil {
				// One bad message never aborts the fetch
				p.log.WithError(err).WithField("id", m.Id).Warn("failed to fetch message, skipping")
				continue
			}

			msgs = append(msgs, convertMessage(full, p.log))

			if len(msgs) >= limit {
				return msgs, nil
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(msgs) >= limit {
			break
		}
	}

	return msgs, nil
}

// Mutator returns the mailbox-mutation surface over this connection
func (p *Provider) Mutator() (*Mutator, error) {
	if p.service == nil {
		return nil, fmt.Errorf("not authenticated - call Authenticate() first")
	}
	return &Mutator{service: p.service}, nil
}
