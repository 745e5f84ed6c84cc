// Package mail provides the authenticated SMTP transport for outgoing
// messages, including the static file attachment.
package mail

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/shivam27k/email-automation-bot/internal/types"
)

// Config holds the mail relay settings.
type Config struct {
	Host           string
	Port           int
	SenderName     string
	SenderEmail    string
	Password       string
	AttachmentPath string // optional; attached by its original filename
}

// Sender delivers one message to one recipient.
type Sender interface {
	Send(recipient types.Recipient, msg types.EmailMessage) error
}

type smtpSender struct {
	dialer *gomail.Dialer
	cfg    Config
	logger *zap.Logger
}

// NewSender creates an SMTP-backed Sender. The connection is dialed per
// send; there is no pooling, matching the low outbound rate enforced by the
// dispatcher.
func NewSender(cfg Config, logger *zap.Logger) Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &smtpSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.SenderEmail, cfg.Password),
		cfg:    cfg,
		logger: logger,
	}
}

func (s *smtpSender) Send(recipient types.Recipient, msg types.EmailMessage) error {
	m := s.buildMessage(recipient, msg)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient.Email, err)
	}

	s.logger.Info("email sent",
		zap.String("recipient", recipient.Email),
		zap.String("subject", msg.Subject))
	return nil
}

// buildMessage assembles the MIME message: plain-text body plus the optional
// binary attachment, base64-encoded by the mail library.
func (s *smtpSender) buildMessage(recipient types.Recipient, msg types.EmailMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.SenderEmail, s.cfg.SenderName)
	m.SetHeader("To", recipient.Email)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if s.cfg.AttachmentPath != "" {
		m.Attach(s.cfg.AttachmentPath)
	}
	return m
}
