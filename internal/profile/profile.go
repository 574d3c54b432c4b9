package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory, holds the optional secrets file
	Data string
	// Version is the current version of server
	Version string

	// Groq Configuration
	GroqBaseURL string        // GRAPHWEAVE_GROQ_BASE_URL (default: https://api.groq.com/openai/v1)
	ChatModel   string        // GRAPHWEAVE_CHAT_MODEL (default: llama-3.3-70b-versatile)
	LLMTimeout  time.Duration // GRAPHWEAVE_LLM_TIMEOUT (default: 60s)

	// MaxConcurrentExtractions bounds simultaneous pipeline runs.
	MaxConcurrentExtractions int64
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from GRAPHWEAVE_* environment variables.
// Values already set (e.g. from flags) are only overridden by non-empty env values.
func (p *Profile) FromEnv() {
	p.GroqBaseURL = getEnvOrDefault("GRAPHWEAVE_GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	p.ChatModel = getEnvOrDefault("GRAPHWEAVE_CHAT_MODEL", "llama-3.3-70b-versatile")

	if raw := os.Getenv("GRAPHWEAVE_LLM_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			p.LLMTimeout = d
		}
	}
	if p.LLMTimeout == 0 {
		p.LLMTimeout = 60 * time.Second
	}
	if p.MaxConcurrentExtractions == 0 {
		p.MaxConcurrentExtractions = 4
	}
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("invalid port %d", p.Port)
	}

	// The data directory is optional; it only carries the secrets file.
	if p.Data != "" {
		dataDir, err := checkDataDir(p.Data)
		if err != nil {
			return err
		}
		p.Data = dataDir
	}

	return nil
}
