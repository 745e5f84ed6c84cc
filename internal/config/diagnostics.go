package config

import "os"

// Diagnostics is a snapshot of the runtime environment used to debug
// misconfigured deployments without printing any secret material.
type Diagnostics struct {
	WorkingDir            string
	EnvFilePath           string
	EnvFileExists         bool
	EnvFileLoaded         bool
	GeminiEnabled         bool
	GeminiAPIKeyPresent   bool
	GeminiAPIKeyLen       int
	SenderPasswordPresent bool
	SenderPasswordLen     int
	ResearchEnabled       bool
	Workers               int
}

// Diagnose collects runtime diagnostics for the current configuration.
// envFile and envLoaded describe the .env load attempt made at startup.
func (c *Config) Diagnose(envFile string, envLoaded bool) Diagnostics {
	cwd, _ := os.Getwd()

	exists := false
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			exists = true
		}
	}

	return Diagnostics{
		WorkingDir:            cwd,
		EnvFilePath:           envFile,
		EnvFileExists:         exists,
		EnvFileLoaded:         envLoaded,
		GeminiEnabled:         c.UseGemini,
		GeminiAPIKeyPresent:   c.GeminiAPIKey != "",
		GeminiAPIKeyLen:       len(c.GeminiAPIKey),
		SenderPasswordPresent: c.SenderPassword != "",
		SenderPasswordLen:     len(c.SenderPassword),
		ResearchEnabled:       c.EnableResearch,
		Workers:               c.Workers,
	}
}
