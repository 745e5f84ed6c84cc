// Package observability provides formatted console output for diagnostics
// and batch summaries.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/shivam27k/email-automation-bot/internal/config"
	"github.com/shivam27k/email-automation-bot/internal/dispatch"
	"github.com/shivam27k/email-automation-bot/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted human-readable output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDiagnostics outputs the runtime environment snapshot.
func (p *Printer) PrintDiagnostics(d config.Diagnostics) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Working dir:      %s\n", d.WorkingDir))
	sb.WriteString(fmt.Sprintf("Env file:         %s\n", d.EnvFilePath))
	sb.WriteString(fmt.Sprintf("Env file exists:  %t\n", d.EnvFileExists))
	sb.WriteString(fmt.Sprintf("Env file loaded:  %t\n", d.EnvFileLoaded))
	sb.WriteString(fmt.Sprintf("Gemini enabled:   %t\n", d.GeminiEnabled))
	sb.WriteString(fmt.Sprintf("API key present:  %t (len %d)\n", d.GeminiAPIKeyPresent, d.GeminiAPIKeyLen))
	sb.WriteString(fmt.Sprintf("Password present: %t (len %d)\n", d.SenderPasswordPresent, d.SenderPasswordLen))
	sb.WriteString(fmt.Sprintf("Research enabled: %t\n", d.ResearchEnabled))
	sb.WriteString(fmt.Sprintf("Workers:          %d", d.Workers))

	p.printBox("Runtime Diagnostics", sb.String())
}

// PrintSummary outputs the batch result overview, listing failures.
func (p *Printer) PrintSummary(s dispatch.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch:  %s\n", s.BatchID))
	sb.WriteString(fmt.Sprintf("Total:  %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("Sent:   %d\n", s.Sent))
	sb.WriteString(fmt.Sprintf("Failed: %d", s.Failed))

	for _, res := range s.Results {
		if res.Err != nil {
			sb.WriteString(fmt.Sprintf("\n  ✗ %s: %v", res.Recipient.Email, res.Err))
		}
	}

	p.printBox("Batch Summary", sb.String())
}

// PrintEmail outputs a generated message in full, used by dry-run mode.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintEmail(recipient types.Recipient, msg types.EmailMessage) {
	fmt.Fprintf(p.out, "To:      %s <%s>\n", recipient.Name, recipient.Email)
	fmt.Fprintf(p.out, "Subject: %s\n\n", msg.Subject)
	fmt.Fprintf(p.out, "%s\n", msg.Body)
	fmt.Fprintf(p.out, "%s\n", strings.Repeat("─", boxWidth))
}
