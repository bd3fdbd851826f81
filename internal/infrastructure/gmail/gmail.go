// Package gmail sends notification email through the Gmail API.
package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/example/resy-agent/internal/domain/reservation"
)

type Sender struct {
	svc    *gmailapi.Service
	logger *slog.Logger
	to     string
}

func New(svc *gmailapi.Service, logger *slog.Logger, recipient string) *Sender {
	return &Sender{svc: svc, logger: logger, to: recipient}
}

// Send delivers one plain-text message to the configured recipient.
func (s *Sender) Send(ctx context.Context, subject, body string) error {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s", s.to, subject, body)
	msg := &gmailapi.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}
	sent, err := s.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return reservation.RemoteErr("gmail", err)
	}
	s.logger.Info("email sent", "message_id", sent.Id, "subject", subject)
	return nil
}
