package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Ledger file
	LedgerFile     string
	CurrencySymbol string
	MalformedRows  string

	// Backend selection
	StorageBackend string
	SQLiteDBPath   string

	// Console
	Theme           string
	LogLevel        string
	ReportChartFile string
	ChartWidth      int
	ChartHeight     int

	// AMQP event feed (optional)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (optional)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string
	MirrorTimeout            time.Duration
}

func Load() *Config {
	cfg := &Config{
		LedgerFile:     getEnv("LEDGER_FILE", "expenses.csv"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		MalformedRows:  getEnv("MALFORMED_ROWS", "skip"),

		StorageBackend: getEnv("STORAGE_BACKEND", "csv"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		Theme:           getEnv("THEME", "light"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ReportChartFile: getEnv("REPORT_CHART_FILE", "expenses_report.png"),
		ChartWidth:      getEnvInt("CHART_WIDTH", 800),
		ChartHeight:     getEnvInt("CHART_HEIGHT", 480),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Expenses"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		MirrorTimeout:            getEnvDuration("MIRROR_TIMEOUT", 30*time.Second),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.LedgerFile) == "" {
		errors = append(errors, "ledger file path cannot be empty")
	}

	if !oneOf(c.StorageBackend, "csv", "sqlite") {
		errors = append(errors, fmt.Sprintf("invalid storage backend '%s': must be one of [csv sqlite]", c.StorageBackend))
	}
	if c.StorageBackend == "sqlite" && c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if !oneOf(c.MalformedRows, "skip", "abort") {
		errors = append(errors, fmt.Sprintf("invalid malformed rows policy '%s': must be one of [skip abort]", c.MalformedRows))
	}

	if !oneOf(c.Theme, "light", "dark") {
		errors = append(errors, fmt.Sprintf("invalid theme '%s': must be one of [light dark]", c.Theme))
	}

	if !oneOf(strings.ToLower(c.LogLevel), "debug", "info", "warn", "warning", "error") {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if c.ChartWidth < 100 || c.ChartWidth > 4096 || c.ChartHeight < 100 || c.ChartHeight > 4096 {
		errors = append(errors, fmt.Sprintf("invalid chart size %dx%d: each side must be between 100 and 4096", c.ChartWidth, c.ChartHeight))
	}

	if strings.ContainsAny(c.CurrencySymbol, ",.+-\"\n\r0123456789") {
		errors = append(errors, fmt.Sprintf("invalid currency symbol %q: must not contain digits, signs, dots, commas, quotes or newlines", c.CurrencySymbol))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets mirror if enabled
	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is set")
		}
		hasFile := c.GoogleServiceAccountFile != ""
		hasJSON := c.GoogleServiceAccountJSON != ""
		if !hasFile && !hasJSON && os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") == "" {
			errors = append(errors, "either GOOGLE_SERVICE_ACCOUNT_FILE, GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_APPLICATION_CREDENTIALS must be provided for the sheets mirror")
		}
		if hasFile {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if c.MirrorTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid mirror timeout %v: must be at least 1 second", c.MirrorTimeout))
	} else if c.MirrorTimeout > 10*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid mirror timeout %v: must be at most 10 minutes", c.MirrorTimeout))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
