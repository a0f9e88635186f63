package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moderationYAML = `
model:
  provider: openai
  name: gpt-4o-mini
  requests_per_second: 2
max_steps: 5
tools:
  output_dir: ./out
agents:
  - name: writer
    backstory: You write short posts.
    task: Write a post about Go.
    expected_output: A post.
  - name: moderator
    task: Review the post.
    expected_output: APPROVED or REJECTED.
    depends_on: [writer]
  - name: publisher
    task: Submit the approved post.
    expected_output: A confirmation.
    tools: [submit_content, current_date]
    depends_on: [moderator]
`

func validConfig() Config {
	cfg := Config{
		Model: ModelConfig{Provider: "openai", Name: "gpt-4o-mini"},
		Agents: []AgentConfig{
			{Name: "a", Task: "first"},
			{Name: "b", Task: "second", DependsOn: []string{"a"}},
		},
	}
	Normalize(&cfg)
	return cfg
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeFile(t, moderationYAML))
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxSteps)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Model.APIKeyEnv)
	assert.Equal(t, 1, cfg.Model.Burst)
	assert.Equal(t, "./out", cfg.Tools.OutputDir)
	require.Len(t, cfg.Agents, 3)
	assert.Equal(t, DefaultAgentMaxSteps, cfg.Agents[0].MaxSteps)
	assert.Equal(t, []string{"moderator"}, cfg.Agents[2].DependsOn)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("model:\n  name: x\n  colour: red\n"))
	assert.ErrorContains(t, err, "colour")
}

func TestParseRejectsMultipleDocuments(t *testing.T) {
	_, err := Parse([]byte("max_steps: 1\n---\nmax_steps: 2\n"))
	assert.ErrorContains(t, err, "multiple YAML documents")
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorContains(t, err, "empty document")
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := Config{Model: ModelConfig{Provider: " Anthropic "}, Agents: []AgentConfig{{Name: " a ", Tools: []string{" current_date"}}}}
	Normalize(&cfg)

	assert.Equal(t, ProviderAnthropic, cfg.Model.Provider)
	assert.Equal(t, "ANTHROPIC_API_KEY", cfg.Model.APIKeyEnv)
	assert.Equal(t, DefaultMaxSteps, cfg.MaxSteps)
	assert.Equal(t, DefaultOutputDir, cfg.Tools.OutputDir)
	assert.Equal(t, "a", cfg.Agents[0].Name)
	assert.Equal(t, "current_date", cfg.Agents[0].Tools[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown provider", func(c *Config) { c.Model.Provider = "bard" }, "model.provider"},
		{"missing model name", func(c *Config) { c.Model.Name = "" }, "model.name"},
		{"temperature range", func(c *Config) { c.Model.Temperature = 3 }, "model.temperature"},
		{"negative budget", func(c *Config) { c.MaxSteps = -1 }, "max_steps"},
		{"no agents", func(c *Config) { c.Agents = nil }, "agents"},
		{"duplicate name", func(c *Config) { c.Agents[1].Name = "a"; c.Agents[1].DependsOn = nil }, "agents[1].name"},
		{"missing task", func(c *Config) { c.Agents[0].Task = "" }, "agents[0].task"},
		{"unknown tool", func(c *Config) { c.Agents[0].Tools = []string{"rm_rf"} }, "agents[0].tools[0]"},
		{"unknown dependency", func(c *Config) { c.Agents[1].DependsOn = []string{"z"} }, "agents[1].depends_on[0]"},
		{"self dependency", func(c *Config) { c.Agents[1].DependsOn = []string{"b"} }, "agents[1].depends_on[0]"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))

			fields := make([]string, 0, len(verr.Issues))
			for _, issue := range verr.Issues {
				fields = append(fields, issue.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, Validate(&cfg))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Issues: []Issue{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}}
	assert.Equal(t, "a: x\nb: y", err.Error())
	assert.Equal(t, "config validation failed", (&ValidationError{}).Error())
}
