package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rootPage = `<html>
<head>
	<title>Acme - Payments Platform</title>
	<meta name="description" content="Acme builds payment infrastructure for small merchants.">
</head>
<body>
	<h1>Move money with confidence</h1>
	<h1>Built for developers</h1>
	<h1>Third heading is skipped</h1>
	<p>Our engineering team ships a Go-based platform.</p>
	<p>We process millions of transactions daily.</p>
</body>
</html>`

const careersPage = `<html>
<head><title>Careers at Acme</title></head>
<body><p>We hire backend engineers in every timezone.</p></body>
</html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(rootPage))
	})
	mux.HandleFunc("/careers", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(careersPage))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetch_CollectsPageSignals(t *testing.T) {
	server := testServer(t)
	fetcher := NewFetcher(&Options{MaxChars: 5000})

	raw := fetcher.Fetch(context.Background(), server.URL)

	assert.Contains(t, raw, "Acme - Payments Platform")
	assert.Contains(t, raw, "payment infrastructure for small merchants")
	assert.Contains(t, raw, "Move money with confidence")
	assert.Contains(t, raw, "Go-based platform")
	assert.Contains(t, raw, "backend engineers in every timezone")

	// only the first two h1 headings are kept
	assert.NotContains(t, raw, "Third heading is skipped")
}

func TestFetch_SkipsFailedPages(t *testing.T) {
	server := testServer(t)
	fetcher := NewFetcher(&Options{MaxChars: 5000})

	// /about 404s on this server; the other pages still contribute
	raw := fetcher.Fetch(context.Background(), server.URL)
	assert.NotEmpty(t, raw)
	assert.NotContains(t, raw, "/about:")
}

func TestFetch_EmptyWebsite(t *testing.T) {
	fetcher := NewFetcher(nil)
	assert.Empty(t, fetcher.Fetch(context.Background(), ""))
	assert.Empty(t, fetcher.Fetch(context.Background(), "   "))
}

func TestFetch_AllPagesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(nil)
	assert.Empty(t, fetcher.Fetch(context.Background(), server.URL))
}

func TestFetch_RespectsMaxChars(t *testing.T) {
	server := testServer(t)
	fetcher := NewFetcher(&Options{MaxChars: 50})

	raw := fetcher.Fetch(context.Background(), server.URL)
	assert.LessOrEqual(t, len([]rune(raw)), 50)
	assert.NotEmpty(t, raw)
}

func TestFetchPage_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(nil)
	_, err := fetcher.fetchPage(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, server.URL, fetchErr.URL)
	assert.Contains(t, fetchErr.Error(), "HTTP status 403")
}

func TestFetchPage_SendsUserAgent(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	t.Cleanup(server.Close)

	fetcher := NewFetcher(nil)
	_, err := fetcher.fetchPage(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotAgent)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "bare domain", input: "acme.com", expected: "https://acme.com"},
		{name: "existing https", input: "https://acme.com", expected: "https://acme.com"},
		{name: "existing http", input: "http://acme.com", expected: "http://acme.com"},
		{name: "trailing slash", input: "https://acme.com/", expected: "https://acme.com"},
		{name: "surrounding whitespace", input: "  acme.com  ", expected: "https://acme.com"},
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeBaseURL(tt.input))
		})
	}
}
