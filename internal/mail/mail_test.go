package mail

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivam27k/email-automation-bot/internal/types"
)

func testSender(cfg Config) *smtpSender {
	return NewSender(cfg, nil).(*smtpSender)
}

func TestBuildMessage_Headers(t *testing.T) {
	s := testSender(Config{
		Host:        "smtp.example.com",
		Port:        587,
		SenderName:  "Shivam Sender",
		SenderEmail: "shivam@example.com",
	})

	recipient := types.Recipient{Name: "Ana", Email: "ana@example.com", JobRole: "Engineer", CompanyName: "Acme"}
	msg := types.EmailMessage{Subject: "Application for Engineer role at Acme", Body: "Hi Ana,\n\nbody text"}

	m := s.buildMessage(recipient, msg)

	require.Len(t, m.GetHeader("To"), 1)
	assert.Equal(t, "ana@example.com", m.GetHeader("To")[0])
	assert.Equal(t, []string{"Application for Engineer role at Acme"}, m.GetHeader("Subject"))

	require.Len(t, m.GetHeader("From"), 1)
	assert.Contains(t, m.GetHeader("From")[0], "shivam@example.com")
	assert.Contains(t, m.GetHeader("From")[0], "Shivam Sender")
}

func TestBuildMessage_PlainTextBody(t *testing.T) {
	s := testSender(Config{SenderEmail: "shivam@example.com"})

	m := s.buildMessage(
		types.Recipient{Name: "Ana", Email: "ana@example.com"},
		types.EmailMessage{Subject: "s", Body: "plain text body"},
	)

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "text/plain")
	assert.Contains(t, buf.String(), "plain text body")
}

func TestBuildMessage_WithAttachment(t *testing.T) {
	dir := t.TempDir()
	attachment := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(attachment, []byte("%PDF-1.4 fake"), 0o600))

	s := testSender(Config{
		SenderEmail:    "shivam@example.com",
		AttachmentPath: attachment,
	})

	m := s.buildMessage(
		types.Recipient{Name: "Ana", Email: "ana@example.com"},
		types.EmailMessage{Subject: "s", Body: "b"},
	)

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)

	// attachments keep their original filename in the MIME part
	assert.Contains(t, buf.String(), "resume.pdf")
	assert.Contains(t, buf.String(), "multipart/mixed")
}

func TestBuildMessage_NoAttachmentWhenUnset(t *testing.T) {
	s := testSender(Config{SenderEmail: "shivam@example.com"})

	m := s.buildMessage(
		types.Recipient{Name: "Ana", Email: "ana@example.com"},
		types.EmailMessage{Subject: "s", Body: "b"},
	)

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "multipart/mixed")
}
