package generator

import (
	"regexp"
	"strings"
)

// signOffWords are bare sign-off lines the backend sometimes emits despite
// instructions; they are dropped wherever they appear as a whole field/line.
var signOffWords = map[string]bool{
	"best":     true,
	"best,":    true,
	"thanks":   true,
	"thanks,":  true,
	"regards":  true,
	"regards,": true,
}

// senderPlaceholders are the placeholder token variants models use instead
// of the actual sender name.
var senderPlaceholders = []string{"[Sender Name]", "<Sender Name>", "{Sender Name}"}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	blankLineRun  = regexp.MustCompile(`\n{3,}`)
)

// replaceSenderPlaceholder substitutes all placeholder variants with the
// literal sender name.
func replaceSenderPlaceholder(text, senderName string) string {
	for _, placeholder := range senderPlaceholders {
		text = strings.ReplaceAll(text, placeholder, senderName)
	}
	return text
}

// cleanLine sanitizes a single-line field: placeholder substitution,
// whitespace collapsing, and suppression of bare sign-off words.
func cleanLine(text, senderName string) string {
	cleaned := replaceSenderPlaceholder(text, senderName)
	cleaned = strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))
	if signOffWords[strings.ToLower(cleaned)] {
		return ""
	}
	return cleaned
}

// cleanParagraph sanitizes a paragraph field: placeholder substitution and
// collapsing runs of blank lines down to a single blank line.
func cleanParagraph(text, senderName string) string {
	cleaned := replaceSenderPlaceholder(text, senderName)
	return strings.TrimSpace(blankLineRun.ReplaceAllString(cleaned, "\n\n"))
}

// cleanBody sanitizes the main body: greeting lines, bare sign-offs, and
// lines consisting solely of the sender's name are removed so the wrapper
// sections are never duplicated inside the body.
func cleanBody(text, recipientName, senderName string) string {
	cleaned := replaceSenderPlaceholder(text, senderName)

	var filtered []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "hi "):
			continue
		case signOffWords[lower]:
			continue
		case lower == strings.ToLower(senderName):
			continue
		}
		filtered = append(filtered, line)
	}

	return strings.Join(filtered, "\n\n")
}

// dedupeAdjacentLines collapses immediately-adjacent duplicate lines,
// compared case- and whitespace-insensitively. Blank lines separate
// sections and never count as duplicates themselves.
func dedupeAdjacentLines(text string) string {
	var (
		result       []string
		previousNorm string
	)
	for _, line := range strings.Split(text, "\n") {
		norm := strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(line, " ")))
		if norm != "" && norm == previousNorm {
			continue
		}
		result = append(result, line)
		if norm != "" {
			previousNorm = norm
		}
	}
	return strings.TrimSpace(strings.Join(result, "\n"))
}

// factIsGrounded reports whether factSource appears verbatim (case- and
// whitespace-insensitive) in the research digest. An empty source or empty
// digest is never grounded.
func factIsGrounded(factSource, digest string) bool {
	sourceNorm := normalizeForMatch(factSource)
	digestNorm := normalizeForMatch(digest)
	return sourceNorm != "" && digestNorm != "" && strings.Contains(digestNorm, sourceNorm)
}

func normalizeForMatch(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " ")))
}
