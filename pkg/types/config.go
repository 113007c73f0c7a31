// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConverterBackend identifies the PDF text extraction tool.
type ConverterBackend string

const (
	ConverterNative     ConverterBackend = "native"
	ConverterMarkitdown ConverterBackend = "markitdown"
)

// AIConfig holds settings for the chat-completion API.
type AIConfig struct {
	// APIKey is the bearer token for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL is the API root (default https://api.openai.com/v1).
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the HTTP request timeout (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxRetries is the number of retries on rate-limit responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CompletionConfig holds per-task model settings.
type CompletionConfig struct {
	Model       string  `json:"model" yaml:"model" mapstructure:"model"`
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the response size. Zero leaves it to the API.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`
}

// Config is the resolved configuration for one process invocation.
type Config struct {
	// DataDir is the root for processed/, notes/, and index/.
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// PDFPath is the source document read by bootstrap.
	PDFPath string `json:"pdf_path" yaml:"pdf_path" mapstructure:"pdf_path"`

	// Converter selects the extraction backend: native or markitdown.
	Converter ConverterBackend `json:"converter" yaml:"converter" mapstructure:"converter"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`

	// Ledger enables the SQLite artifact history.
	Ledger bool `json:"ledger" yaml:"ledger" mapstructure:"ledger"`

	AI    AIConfig         `json:"ai" yaml:"ai" mapstructure:"ai"`
	QA    CompletionConfig `json:"qa" yaml:"qa" mapstructure:"qa"`
	Notes CompletionConfig `json:"notes" yaml:"notes" mapstructure:"notes"`
}
