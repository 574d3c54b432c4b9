// Package credential resolves the Groq API key from layered sources.
package credential

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	secretsFile = "secrets"
	secretKey   = "groq_api_key"

	envKey       = "GROQ_API_KEY"
	envKeyPrefix = "GRAPHWEAVE_GROQ_API_KEY"
)

// Resolver looks up the API credential. Sources in order: the secrets file
// in the data directory, the environment, and finally a per-request value
// entered by the user. Pure lookup, no retries, no caching of overrides.
type Resolver struct {
	stored string
}

// NewResolver creates a Resolver, reading the optional secrets file once.
// A missing or unreadable file is not an error; the source just yields
// nothing.
func NewResolver(dataDir string) *Resolver {
	r := &Resolver{}
	if dataDir == "" {
		return r
	}

	v := viper.New()
	v.SetConfigName(secretsFile)
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(filepath.Join(dataDir, "secrets.yaml")); statErr == nil {
			slog.Warn("secrets file exists but could not be read", "dir", dataDir, "error", err)
		}
		return r
	}
	r.stored = v.GetString(secretKey)
	return r
}

// Resolve returns the first non-empty credential and true, or "" and false
// when every source is empty. The override is the user-entered key and is
// consulted last.
func (r *Resolver) Resolve(override string) (string, bool) {
	if r.stored != "" {
		return r.stored, true
	}
	if key := os.Getenv(envKeyPrefix); key != "" {
		return key, true
	}
	if key := os.Getenv(envKey); key != "" {
		return key, true
	}
	if override != "" {
		return override, true
	}
	return "", false
}

// Configured reports whether a process-level credential exists, i.e. the
// user does not need to enter one.
func (r *Resolver) Configured() bool {
	_, ok := r.Resolve("")
	return ok
}
