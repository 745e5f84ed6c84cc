// Package generator builds personalized outreach emails. It orchestrates
// company research, prompt construction, the generation backend call, and
// response sanitization, and guarantees a usable message by degrading to a
// static template on any failure.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shivam27k/email-automation-bot/internal/gemini"
	"github.com/shivam27k/email-automation-bot/internal/prompts"
	"github.com/shivam27k/email-automation-bot/internal/research"
	"github.com/shivam27k/email-automation-bot/internal/schemas"
	"github.com/shivam27k/email-automation-bot/internal/types"
)

// noFactsMarker is embedded in the prompt when no research is available, so
// the model knows to keep company mentions non-specific.
const noFactsMarker = "No external company facts available."

// defaultClose is used when the backend returns no closing sentence.
const defaultClose = "Would you be open to a brief conversation?"

// Backend is the remote generation API surface the generator depends on.
type Backend interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// GeneratedContent is the structured response expected from the backend.
// All seven fields are raw strings prior to sanitization; only the subject
// and the assembled body survive into the output contract.
type GeneratedContent struct {
	Subject           string `json:"subject"`
	TLDR              string `json:"tldr"`
	ValueProp         string `json:"value_prop"`
	CompanyLine       string `json:"company_line"`
	CompanyFactSource string `json:"company_fact_source"`
	Body              string `json:"body"`
	Close             string `json:"close"`
}

// Options configures a Generator.
type Options struct {
	SenderName       string
	SenderProfile    string
	StyleGuide       string
	ResearchMaxChars int
}

// Generator produces one email per recipient. It is safe for concurrent use;
// the research cache is the only shared mutable state and serializes access
// internally.
type Generator struct {
	senderName    string
	senderProfile string
	styleGuide    string
	maxChars      int

	backend Backend           // nil disables generation entirely
	fetcher *research.Fetcher // nil disables company research
	cache   *research.Cache
	logger  *zap.Logger
}

// New creates a Generator. Pass a nil backend to force the fallback template
// for every recipient, and a nil fetcher to disable company research.
func New(opts Options, backend Backend, fetcher *research.Fetcher, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		senderName:    opts.SenderName,
		senderProfile: strings.TrimSpace(opts.SenderProfile),
		styleGuide:    strings.TrimSpace(opts.StyleGuide),
		maxChars:      opts.ResearchMaxChars,
		backend:       backend,
		fetcher:       fetcher,
		cache:         research.NewCache(),
		logger:        logger,
	}
}

// Generate returns the subject/body pair for a recipient. It never fails:
// any backend, parse, or validation problem routes to the fallback template.
func (g *Generator) Generate(ctx context.Context, recipient types.Recipient) types.EmailMessage {
	if g.backend == nil {
		return Fallback(recipient, g.senderName)
	}

	msg, err := g.generate(ctx, recipient)
	if err != nil {
		g.logger.Debug("generation failed, using fallback template",
			zap.String("recipient", recipient.Email),
			zap.Error(err))
		return Fallback(recipient, g.senderName)
	}
	return msg
}

func (g *Generator) generate(ctx context.Context, recipient types.Recipient) (types.EmailMessage, error) {
	digest := g.resolveResearch(ctx, recipient)

	prompt := g.buildPrompt(recipient, digest)
	raw, err := g.backend.GenerateJSON(ctx, prompt)
	if err != nil {
		return types.EmailMessage{}, err
	}

	content, err := parseContent(raw)
	if err != nil {
		return types.EmailMessage{}, err
	}

	subject := cleanLine(content.Subject, g.senderName)
	if subject == "" {
		return types.EmailMessage{}, fmt.Errorf("response contained no usable subject")
	}

	return types.EmailMessage{
		Subject: subject,
		Body:    g.formatBody(content, recipient.Name, digest),
	}, nil
}

// resolveResearch returns the research digest for a recipient. Manual
// company context on the row wins over fetched research. Cache reads and
// writes are individually atomic; concurrent misses for the same company may
// fetch twice, which is accepted.
func (g *Generator) resolveResearch(ctx context.Context, recipient types.Recipient) string {
	if manual := strings.TrimSpace(recipient.CompanyContext); manual != "" {
		return research.Truncate(manual, g.maxChars)
	}

	if g.fetcher == nil {
		return ""
	}

	name := strings.TrimSpace(recipient.CompanyName)
	website := strings.TrimSpace(recipient.CompanyWebsite)
	if name == "" && website == "" {
		return ""
	}

	key := research.Key(name, website)
	if digest, ok := g.cache.Get(key); ok {
		return digest
	}

	raw := g.fetcher.Fetch(ctx, website)
	digest := research.Rank(raw, recipient.JobRole, g.maxChars)
	g.cache.Set(key, digest)
	return digest
}

func (g *Generator) buildPrompt(recipient types.Recipient, digest string) string {
	facts := digest
	if facts == "" {
		facts = noFactsMarker
	}

	template := prompts.MustGet("outreach.json", "generate-email")
	return prompts.Format(template, map[string]string{
		"Name":          recipient.Name,
		"Role":          recipient.JobRole,
		"Company":       recipient.CompanyName,
		"SenderProfile": g.senderProfile,
		"StyleGuide":    g.styleGuide,
		"CompanyFacts":  facts,
	})
}

// parseContent strips an optional code fence, enforces the seven-field
// schema, and decodes the response. Any violation is a hard failure for the
// attempt; there is no partial recovery.
func parseContent(raw string) (*GeneratedContent, error) {
	text := gemini.CleanJSONBlock(raw)

	if err := schemas.ValidateEmailContent(text); err != nil {
		return nil, fmt.Errorf("malformed generation response: %w", err)
	}

	var content GeneratedContent
	if err := json.Unmarshal([]byte(text), &content); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}
	return &content, nil
}

// formatBody assembles the final plain-text body in fixed section order:
// tldr, value proposition, greeting, grounded company line, main body,
// close, sign-off. Adjacent duplicate lines are collapsed at the end.
func (g *Generator) formatBody(content *GeneratedContent, recipientName, digest string) string {
	tldr := cleanLine(content.TLDR, g.senderName)
	valueProp := cleanParagraph(content.ValueProp, g.senderName)
	body := cleanBody(content.Body, recipientName, g.senderName)
	companyLine := cleanLine(content.CompanyLine, g.senderName)
	factSource := cleanLine(content.CompanyFactSource, g.senderName)
	closing := cleanLine(content.Close, g.senderName)
	if closing == "" {
		closing = defaultClose
	}

	if !factIsGrounded(factSource, digest) {
		companyLine = ""
	}

	companySection := ""
	if companyLine != "" {
		companySection = companyLine + "\n\n"
	}

	rendered := fmt.Sprintf("tldr;\n%s\n\n%s\n\nHi %s,\n\n%s%s\n\n%s\n\nBest,\n%s",
		tldr, valueProp, recipientName, companySection, body, closing, g.senderName)

	return dedupeAdjacentLines(rendered)
}
