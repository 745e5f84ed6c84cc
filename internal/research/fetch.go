// Package research provides best-effort company research: fetching a few
// well-known pages from a company website and distilling them into a short,
// role-relevant digest used to ground generated email content.
package research

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the per-page HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultUserAgent is the user agent string for research requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; OutreachBot/1.0)"

// Pages fetched relative to the company website root.
var pagePaths = []string{"", "/about", "/careers"}

const (
	maxHeadings   = 2
	maxParagraphs = 8
)

// Error represents a failure fetching a single research page.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("research fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("research fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxChars  int
}

// DefaultOptions returns sensible defaults for research fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		MaxChars:  1800,
	}
}

// Fetcher retrieves weak textual signals from a company website.
// It holds no mutable state and is safe for concurrent use.
type Fetcher struct {
	opts   *Options
	client *http.Client
}

// NewFetcher creates a Fetcher with the given options (nil for defaults).
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
	}
}

// Fetch retrieves the root, /about and /careers pages of the company website
// and concatenates their extracted text, capped at MaxChars. Every page
// failure is skipped; partial results are normal. Returns "" when the website
// is empty or nothing usable was found.
func (f *Fetcher) Fetch(ctx context.Context, website string) string {
	base := NormalizeBaseURL(website)
	if base == "" {
		return ""
	}

	var chunks []string
	for _, path := range pagePaths {
		pageURL := joinURL(base, path)
		text, err := f.fetchPage(ctx, pageURL)
		if err != nil {
			continue
		}
		if text != "" {
			chunks = append(chunks, fmt.Sprintf("%s: %s", pageURL, text))
		}
	}

	summary := strings.TrimSpace(strings.Join(chunks, "\n"))
	if summary == "" {
		return ""
	}
	return Truncate(summary, f.opts.MaxChars)
}

// fetchPage GETs a single page and extracts its weak signals.
func (f *Fetcher) fetchPage(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: pageURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", &Error{URL: pageURL, Message: "failed to parse HTML", Cause: err}
	}

	return extractSignals(doc), nil
}

// extractSignals pulls title, meta description, leading headings and leading
// paragraphs out of a parsed page.
func extractSignals(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())

	description := ""
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		description = strings.TrimSpace(content)
	}

	var headings []string
	doc.Find("h1").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxHeadings {
			return false
		}
		if t := normalizeSpace(s.Text()); t != "" {
			headings = append(headings, t)
		}
		return true
	})

	var paragraphs []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxParagraphs {
			return false
		}
		if t := normalizeSpace(s.Text()); t != "" {
			paragraphs = append(paragraphs, t)
		}
		return true
	})

	parts := make([]string, 0, 4)
	for _, part := range []string{title, description, strings.Join(headings, " "), strings.Join(paragraphs, " ")} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " | ")
}

// NormalizeBaseURL prepends https:// to scheme-less websites and trims
// trailing slashes. Returns "" for empty input.
func NormalizeBaseURL(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
		website = "https://" + website
	}
	if _, err := url.Parse(website); err != nil {
		return ""
	}
	return strings.TrimSuffix(website, "/")
}

func joinURL(base, path string) string {
	if path == "" {
		return base
	}
	return base + path
}

// Truncate caps s at max characters (runes). Non-positive max disables capping.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
