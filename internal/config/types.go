package config

// Config represents the main service configuration (cheatsheet.yaml)
type Config struct {
	Name      string          `yaml:"name" json:"name"`
	Version   string          `yaml:"version" json:"version"`
	Provider  ProviderConfig  `yaml:"provider" json:"provider"`
	Curator   CuratorConfig   `yaml:"curator" json:"curator"`
	Store     StoreConfig     `yaml:"store" json:"store"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	Templates TemplatesConfig `yaml:"templates" json:"templates"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics" json:"metrics"`
	Hooks     HooksConfig     `yaml:"hooks" json:"hooks"`
}

// MetricsConfig configures metrics export. An empty path disables export.
type MetricsConfig struct {
	ExportPath string `yaml:"export_path,omitempty" json:"export_path,omitempty"`
}

// ProviderConfig configures the LLM provider used for curation calls
type ProviderConfig struct {
	Name   string `yaml:"name" json:"name"`   // anthropic
	APIKey string `yaml:"api_key,omitempty" json:"api_key,omitempty"`
}

// CuratorConfig configures the curation call itself
type CuratorConfig struct {
	Model       string  `yaml:"model" json:"model"`
	Temperature float64 `yaml:"temperature" json:"temperature"`
	MaxTokens   int     `yaml:"max_tokens" json:"max_tokens"`
}

// StoreConfig configures cheatsheet storage
type StoreConfig struct {
	Driver string `yaml:"driver" json:"driver"` // sqlite, file, memory
	Path   string `yaml:"path" json:"path"`     // db file or flat file path
}

// ServerConfig configures the HTTP transport
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// TemplatesConfig locates the prompt template files
type TemplatesConfig struct {
	Dir       string `yaml:"dir" json:"dir"`
	Generator string `yaml:"generator" json:"generator"` // filename within dir
	Curator   string `yaml:"curator" json:"curator"`     // filename within dir
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text, json
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// HooksConfig configures lifecycle event hooks.
type HooksConfig struct {
	Enabled bool         `yaml:"enabled" json:"enabled"`
	Hooks   []HookConfig `yaml:"hooks" json:"hooks"`
}

// HookConfig defines a single hook.
type HookConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Type     string   `yaml:"type" json:"type"`     // shell, webhook, log
	Events   []string `yaml:"events" json:"events"` // event types to match
	Blocking bool     `yaml:"blocking" json:"blocking"`
	Command  string   `yaml:"command,omitempty" json:"command,omitempty"` // for shell hooks
	URL      string   `yaml:"url,omitempty" json:"url,omitempty"`         // for webhook hooks
	Level    string   `yaml:"level,omitempty" json:"level,omitempty"`     // for log hooks (debug, info, warn)
}

// GeneratorPath returns the full path of the generator template.
func (t *TemplatesConfig) GeneratorPath() string {
	return t.Dir + "/" + t.Generator
}

// CuratorPath returns the full path of the curator template.
func (t *TemplatesConfig) CuratorPath() string {
	return t.Dir + "/" + t.Curator
}
