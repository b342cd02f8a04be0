package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names for the store selection.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
)

// Config holds the runtime configuration, sourced from the environment with
// an optional .env file.
type Config struct {
	// Store selection
	Backend            string
	GoogleCloudProject string
	CredentialsFile    string
	EntryCollection    string
	CategoryCollection string

	// Presentation
	Locale         string
	CurrencySymbol string
}

// Load reads configuration from a .env file (when present) and the process
// environment. Environment variables win over .env values.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Backend:            getEnv("LEDGER_BACKEND", BackendMemory),
		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		CredentialsFile:    getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		EntryCollection:    getEnv("ENTRY_COLLECTION", "transactions"),
		CategoryCollection: getEnv("CATEGORY_COLLECTION", "categories"),
		Locale:             getEnv("LEDGER_LOCALE", "pt-BR"),
		CurrencySymbol:     getEnv("LEDGER_CURRENCY", "R$"),
	}
}

// Validate checks the configuration, aggregating every problem into one
// message so a misconfigured deployment fails with the full picture.
func (c *Config) Validate() error {
	var problems []string

	switch c.Backend {
	case BackendMemory, BackendFirestore:
	default:
		problems = append(problems, fmt.Sprintf("LEDGER_BACKEND must be %q or %q, got %q",
			BackendMemory, BackendFirestore, c.Backend))
	}
	if c.Backend == BackendFirestore && c.GoogleCloudProject == "" {
		problems = append(problems, "GOOGLE_CLOUD_PROJECT is required for the firestore backend")
	}
	if c.EntryCollection == "" {
		problems = append(problems, "ENTRY_COLLECTION must not be empty")
	}
	if c.CategoryCollection == "" {
		problems = append(problems, "CATEGORY_COLLECTION must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
