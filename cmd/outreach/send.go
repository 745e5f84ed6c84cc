package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shivam27k/email-automation-bot/internal/config"
	"github.com/shivam27k/email-automation-bot/internal/dispatch"
	"github.com/shivam27k/email-automation-bot/internal/gemini"
	"github.com/shivam27k/email-automation-bot/internal/generator"
	"github.com/shivam27k/email-automation-bot/internal/mail"
	"github.com/shivam27k/email-automation-bot/internal/observability"
	"github.com/shivam27k/email-automation-bot/internal/recipients"
	"github.com/shivam27k/email-automation-bot/internal/research"
	"github.com/shivam27k/email-automation-bot/internal/types"
)

var sendCommand = &cobra.Command{
	Use:   "send",
	Short: "Generate and send outreach emails to every recipient in the CSV",
	Long: `Reads the recipient list, generates a personalized subject/body per recipient
(falling back to the static template when generation is unavailable), and sends
each message over the configured SMTP relay using a bounded worker pool.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values; secrets come from the environment
(GEMINI_API_KEY, SENDER_PASSWORD).`,
	RunE: runSendCmd,
}

var (
	sendConfigPath string
	sendCSVPath    string
	sendAttachment string
	sendWorkers    int
	sendDryRun     bool
	sendVerbose    bool
)

func init() {
	sendCommand.Flags().StringVar(&sendConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	sendCommand.Flags().StringVar(&sendCSVPath, "csv", "", "Path to the recipient CSV file")
	sendCommand.Flags().StringVar(&sendAttachment, "attachment", "", "Path to the file attached to every email")
	sendCommand.Flags().IntVar(&sendWorkers, "workers", 0, "Worker pool size (bounded 1-5)")
	sendCommand.Flags().BoolVar(&sendDryRun, "dry-run", false, "Generate and print emails without sending")
	sendCommand.Flags().BoolVarP(&sendVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(sendCommand)
}

func runSendCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	recips, rowErrs, err := recipients.ReadCSV(cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("failed to read recipients: %w", err)
	}
	for _, rowErr := range rowErrs {
		logger.Warn("skipping recipient row", zap.Error(rowErr))
	}
	if len(recips) == 0 {
		return fmt.Errorf("no recipients found in %s", cfg.CSVPath)
	}

	gen, closeBackend, err := buildGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	printer := observability.NewPrinter(os.Stdout)

	var sender mail.Sender
	if sendDryRun {
		sender = &printSender{printer: printer}
	} else {
		sender = mail.NewSender(mail.Config{
			Host:           cfg.SMTPHost,
			Port:           cfg.SMTPPort,
			SenderName:     cfg.SenderName,
			SenderEmail:    cfg.SenderEmail,
			Password:       cfg.SenderPassword,
			AttachmentPath: cfg.AttachmentPath,
		}, logger)
	}

	dispatcher := dispatch.New(gen, sender, cfg.Workers, logger)
	summary := dispatcher.Run(ctx, recips)

	printer.PrintSummary(summary)
	return nil
}

// loadConfig resolves the effective configuration: defaults, then the JSON
// file, then environment secrets, then explicitly-set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if sendConfigPath != "" {
		loaded, err := config.Load(sendConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.ApplyEnv()

	if cmd.Flags().Changed("csv") {
		cfg.CSVPath = sendCSVPath
	}
	if cmd.Flags().Changed("attachment") {
		cfg.AttachmentPath = sendAttachment
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = sendWorkers
	}
	if sendVerbose {
		cfg.GeminiDebug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildGenerator wires research and the generation backend according to the
// configuration. The returned close function releases the backend client.
func buildGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*generator.Generator, func(), error) {
	var fetcher *research.Fetcher
	if cfg.EnableResearch {
		fetcher = research.NewFetcher(&research.Options{
			Timeout:  time.Duration(cfg.ResearchTimeoutSec) * time.Second,
			MaxChars: cfg.ResearchMaxChars,
		})
	}

	var backend generator.Backend
	closeBackend := func() {}
	if cfg.GenerationEnabled() {
		client, err := gemini.NewClient(ctx, &gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: float32(cfg.GeminiTemperature),
			Timeout:     time.Duration(cfg.GeminiTimeoutSec) * time.Second,
			MaxRetries:  cfg.GeminiMaxRetries,
			RetryBase:   time.Duration(cfg.GeminiRetryBaseSec) * time.Second,
			RetryMax:    time.Duration(cfg.GeminiRetryMaxSec) * time.Second,
		}, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create generation backend: %w", err)
		}
		backend = client
		closeBackend = func() { _ = client.Close() }
	} else {
		logger.Info("generation disabled, using fallback template for all recipients")
	}

	gen := generator.New(generator.Options{
		SenderName:       cfg.SenderName,
		SenderProfile:    cfg.SenderProfile,
		StyleGuide:       cfg.StyleGuide,
		ResearchMaxChars: cfg.ResearchMaxChars,
	}, backend, fetcher, logger)

	return gen, closeBackend, nil
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	if sendVerbose || cfg.GeminiDebug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// printSender is the dry-run transport: it prints each message instead of
// delivering it.
type printSender struct {
	printer *observability.Printer
	mu      sync.Mutex
}

func (s *printSender) Send(recipient types.Recipient, msg types.EmailMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.printer.PrintEmail(recipient, msg)
	return nil
}
