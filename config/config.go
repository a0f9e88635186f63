// Package config loads workflow definitions from YAML files.
package config

// Config is a complete workflow definition.
type Config struct {
	Model    ModelConfig   `yaml:"model"`
	MaxSteps int           `yaml:"max_steps"`
	Agents   []AgentConfig `yaml:"agents"`
	Tools    ToolsConfig   `yaml:"tools"`
	Audit    AuditConfig   `yaml:"audit"`
	Logging  LoggingConfig `yaml:"logging"`
}

// ModelConfig selects and tunes the LLM transport.
type ModelConfig struct {
	Provider          string  `yaml:"provider"`
	Name              string  `yaml:"name"`
	BaseURL           string  `yaml:"base_url"`
	APIKeyEnv         string  `yaml:"api_key_env"`
	Temperature       float64 `yaml:"temperature"`
	MaxTokens         int     `yaml:"max_tokens"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// AgentConfig describes one workflow member.
type AgentConfig struct {
	Name           string   `yaml:"name"`
	Backstory      string   `yaml:"backstory"`
	Task           string   `yaml:"task"`
	ExpectedOutput string   `yaml:"expected_output"`
	Tools          []string `yaml:"tools"`
	DependsOn      []string `yaml:"depends_on"`
	MaxSteps       int      `yaml:"max_steps"`
}

// ToolsConfig configures the built-in tools.
type ToolsConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// AuditConfig configures the run audit trail. An empty path keeps events in memory.
type AuditConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultMaxSteps      = 10
	DefaultAgentMaxSteps = 10
	DefaultOutputDir     = "."
)

// DefaultAPIKeyEnv returns the conventional API key variable of provider.
func DefaultAPIKeyEnv(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}
