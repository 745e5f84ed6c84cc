// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Default SMTP and generation settings. These mirror a typical Gmail relay
// setup and can all be overridden via the config file or flags.
const (
	DefaultSMTPHost          = "smtp.gmail.com"
	DefaultSMTPPort          = 587
	DefaultGeminiModel       = "gemini-2.0-flash"
	DefaultGeminiTimeoutSec  = 20
	DefaultGeminiTemperature = 0.7
	DefaultMaxRetries        = 4
	DefaultRetryBaseSec      = 2
	DefaultRetryMaxSec       = 30
	DefaultResearchTimeout   = 10
	DefaultResearchMaxChars  = 1800
	DefaultWorkers           = 3
)

// DefaultStyleGuide is the editable style block embedded in every
// generation prompt.
const DefaultStyleGuide = `Write concise, high-signal outreach emails for job applications.
Required structure:
1) "tldr;" line
2) A short value proposition paragraph (2-4 sentences)
3) "Hi <name>," line
4) Main body: role fit + concrete achievements + why this company
5) Crisp close + CTA
6) "Best," and sender name
Tone: confident, respectful, specific, and human. No hype. No fluff.
Keep body under 220 words.
Avoid generic praise (e.g., "impressed by innovation").
Use one concrete, role-relevant company reference only if it is verifiable.
If company facts are weak, skip detailed company claims.`

// DefaultSenderProfile describes the sender to the generation backend.
const DefaultSenderProfile = `I am a software engineer applying for product-focused engineering roles.
I can work across backend, frontend, and infrastructure.
I value early-stage ownership, shipping velocity, and measurable impact.`

// Config holds the full process configuration. All fields are optional in the
// JSON file; missing values fall back to defaults, and secrets come from the
// environment.
type Config struct {
	// Sender identity and mail relay
	SMTPHost       string `json:"smtp_host,omitempty"`
	SMTPPort       int    `json:"smtp_port,omitempty" validate:"gte=0,lte=65535"`
	SenderName     string `json:"sender_name,omitempty"`
	SenderEmail    string `json:"sender_email,omitempty"`
	SenderPassword string `json:"-"` // env only, never persisted

	// Files
	CSVPath        string `json:"csv_path,omitempty"`
	AttachmentPath string `json:"attachment_path,omitempty"`

	// Generation backend
	UseGemini          bool    `json:"use_gemini"`
	GeminiAPIKey       string  `json:"-"` // env only, never persisted
	GeminiModel        string  `json:"gemini_model,omitempty"`
	GeminiTimeoutSec   int     `json:"gemini_timeout_seconds,omitempty" validate:"gte=0"`
	GeminiTemperature  float64 `json:"gemini_temperature,omitempty" validate:"gte=0,lte=2"`
	GeminiDebug        bool    `json:"gemini_debug,omitempty"`
	GeminiMaxRetries   int     `json:"gemini_max_retries,omitempty" validate:"gte=0"`
	GeminiRetryBaseSec int     `json:"gemini_retry_base_seconds,omitempty" validate:"gte=0"`
	GeminiRetryMaxSec  int     `json:"gemini_retry_max_seconds,omitempty" validate:"gte=0"`

	// Company research
	EnableResearch     bool `json:"enable_company_research"`
	ResearchTimeoutSec int  `json:"company_research_timeout_seconds,omitempty" validate:"gte=0"`
	ResearchMaxChars   int  `json:"company_research_max_chars,omitempty" validate:"gte=0"`

	// Dispatch
	Workers   int `json:"workers,omitempty" validate:"gte=0,lte=5"`
	BatchSize int `json:"batch_size,omitempty" validate:"gte=0"` // advisory only

	// Prompt texts
	StyleGuide    string `json:"style_guide,omitempty"`
	SenderProfile string `json:"sender_profile,omitempty"`
}

// Default returns a Config populated with all defaults. Generation and
// research are enabled by default; they degrade gracefully without an API key.
func Default() *Config {
	return &Config{
		SMTPHost:           DefaultSMTPHost,
		SMTPPort:           DefaultSMTPPort,
		CSVPath:            "emails.csv",
		AttachmentPath:     "example.pdf",
		UseGemini:          true,
		GeminiModel:        DefaultGeminiModel,
		GeminiTimeoutSec:   DefaultGeminiTimeoutSec,
		GeminiTemperature:  DefaultGeminiTemperature,
		GeminiMaxRetries:   DefaultMaxRetries,
		GeminiRetryBaseSec: DefaultRetryBaseSec,
		GeminiRetryMaxSec:  DefaultRetryMaxSec,
		EnableResearch:     true,
		ResearchTimeoutSec: DefaultResearchTimeout,
		ResearchMaxChars:   DefaultResearchMaxChars,
		Workers:            DefaultWorkers,
		StyleGuide:         DefaultStyleGuide,
		SenderProfile:      DefaultSenderProfile,
	}
}

// Load reads a JSON config file and overlays it onto the defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg.fillTextDefaults()
	return cfg, nil
}

// ApplyEnv overlays environment-provided secrets and toggles.
// Secrets never come from the config file.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.GeminiAPIKey = key
	}
	if pw := os.Getenv("SENDER_PASSWORD"); pw != "" {
		c.SenderPassword = pw
	}
	if debug := os.Getenv("GEMINI_DEBUG"); debug != "" {
		c.GeminiDebug = strings.EqualFold(debug, "true")
	}
}

// Validate checks numeric ranges and that referenced files exist.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.AttachmentPath != "" {
		if _, err := os.Stat(c.AttachmentPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: attachment file not found: %s", c.AttachmentPath)
		}
	}

	return nil
}

// GenerationEnabled reports whether the Gemini path can be used at all.
// Without an API key the fallback template is used exclusively.
func (c *Config) GenerationEnabled() bool {
	return c.UseGemini && c.GeminiAPIKey != ""
}

func (c *Config) fillTextDefaults() {
	if strings.TrimSpace(c.StyleGuide) == "" {
		c.StyleGuide = DefaultStyleGuide
	}
	if strings.TrimSpace(c.SenderProfile) == "" {
		c.SenderProfile = DefaultSenderProfile
	}
}
