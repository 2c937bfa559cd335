// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// IndexBackend identifies the semantic index implementation.
type IndexBackend string

const (
	BackendChromem IndexBackend = "chromem"
	BackendSQLite  IndexBackend = "sqlite"
)

// IndexConfig holds settings for the semantic index connection. The
// connection is opened once at startup and reused read-only for the
// process lifetime.
type IndexConfig struct {
	// Backend selects the index implementation: chromem or sqlite.
	Backend IndexBackend `json:"backend" yaml:"backend"`

	// Path is the on-disk location of the index (directory for chromem,
	// database file for sqlite).
	Path string `json:"path" yaml:"path"`

	// Collection names the chromem collection (default "crs").
	Collection string `json:"collection" yaml:"collection"`

	// InMemory keeps the chromem index in memory only. Used by tests and
	// throwaway runs; persistence is skipped entirely.
	InMemory bool `json:"in_memory" yaml:"in_memory"`
}

// EmbeddingProvider identifies the embedding model host.
type EmbeddingProvider string

const (
	ProviderOllama EmbeddingProvider = "ollama"
	ProviderOpenAI EmbeddingProvider = "openai"
)

// EmbeddingConfig holds settings for the embedding model client. The
// embedding call is treated as blocking and synchronous; the provider's
// client governs timeouts.
type EmbeddingConfig struct {
	// Provider selects the embedding host: ollama or openai.
	Provider EmbeddingProvider `json:"provider" yaml:"provider"`

	// BaseURL is the provider endpoint (e.g. "http://localhost:11434"
	// for ollama, or an OpenRouter base URL for openai).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the embedding model identifier (e.g. "all-minilm").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against openai-compatible providers. Ignored
	// for ollama.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigins lists CORS origins. Empty allows all origins,
	// suitable for a local frontend.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// Config groups all component configurations.
type Config struct {
	Index     IndexConfig     `json:"index" yaml:"index"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
