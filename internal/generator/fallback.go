package generator

import (
	"fmt"

	"github.com/shivam27k/email-automation-bot/internal/types"
)

// Fallback produces the deterministic template message from recipient fields
// alone. No network, no cache: this path must always succeed, even when the
// generation backend and the company website are both unreachable.
func Fallback(recipient types.Recipient, senderName string) types.EmailMessage {
	subject := fmt.Sprintf("Application for %s role at %s", recipient.JobRole, recipient.CompanyName)

	body := fmt.Sprintf(`tldr;
I can contribute quickly as a hands-on engineer for %s.

I build reliable product features across backend, frontend, and infra with a strong focus on shipping measurable outcomes.

Hi %s,

I wanted to reach out regarding the %s role at %s. I am interested in teams that move fast, care about product quality, and value ownership. I would be glad to share relevant projects and discuss where I can add value quickly.

If useful, I can send a short portfolio summary tailored to your current priorities.

Best,
%s`, recipient.CompanyName, recipient.Name, recipient.JobRole, recipient.CompanyName, senderName)

	return types.EmailMessage{Subject: subject, Body: body}
}
