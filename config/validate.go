package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/reactmesh/logging"
	"github.com/hupe1980/reactmesh/tool"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

type issueCollector struct {
	issues []Issue
}

func (c *issueCollector) add(field, message string) {
	c.issues = append(c.issues, Issue{Field: field, Message: message})
}

func (c *issueCollector) result() error {
	if len(c.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: c.issues}
}

// Validate checks a normalized config for correctness. Cycles between agents
// are detected later when the workflow graph is validated.
func Validate(cfg *Config) error {
	c := &issueCollector{}

	validateModel(c, cfg.Model)

	if cfg.MaxSteps < 0 {
		c.add("max_steps", "must not be negative")
	}

	if cfg.Logging.Level != "" {
		if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
			c.add("logging.level", err.Error())
		}
	}
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		c.add("logging.format", fmt.Sprintf("unsupported format %q", cfg.Logging.Format))
	}

	validateAgents(c, cfg.Agents)

	return c.result()
}

func validateModel(c *issueCollector, m ModelConfig) {
	switch m.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		c.add("model.provider", fmt.Sprintf("unsupported provider %q", m.Provider))
	}
	if strings.TrimSpace(m.Name) == "" {
		c.add("model.name", "is required")
	}
	if m.Temperature < 0 || m.Temperature > 2 {
		c.add("model.temperature", "must be between 0 and 2")
	}
	if m.MaxTokens < 0 {
		c.add("model.max_tokens", "must not be negative")
	}
	if m.RequestsPerSecond < 0 {
		c.add("model.requests_per_second", "must not be negative")
	}
	if m.Burst < 0 {
		c.add("model.burst", "must not be negative")
	}
}

func validateAgents(c *issueCollector, agents []AgentConfig) {
	if len(agents) == 0 {
		c.add("agents", "at least one agent is required")
		return
	}

	names := map[string]struct{}{}
	for i, a := range agents {
		prefix := fmt.Sprintf("agents[%d]", i)
		if a.Name == "" {
			c.add(prefix+".name", "is required")
			continue
		}
		if _, dup := names[a.Name]; dup {
			c.add(prefix+".name", fmt.Sprintf("duplicate agent name %q", a.Name))
		}
		names[a.Name] = struct{}{}
	}

	builtins := tool.BuiltinNames()
	for i, a := range agents {
		prefix := fmt.Sprintf("agents[%d]", i)
		if strings.TrimSpace(a.Task) == "" {
			c.add(prefix+".task", "is required")
		}
		if a.MaxSteps < 0 {
			c.add(prefix+".max_steps", "must not be negative")
		}
		for j, t := range a.Tools {
			if !slices.Contains(builtins, t) {
				c.add(fmt.Sprintf("%s.tools[%d]", prefix, j),
					fmt.Sprintf("unknown tool %q (available: %s)", t, strings.Join(builtins, ", ")))
			}
		}
		for j, dep := range a.DependsOn {
			field := fmt.Sprintf("%s.depends_on[%d]", prefix, j)
			if dep == a.Name {
				c.add(field, "agent cannot depend on itself")
				continue
			}
			if _, ok := names[dep]; !ok {
				c.add(field, fmt.Sprintf("unknown agent %q", dep))
			}
		}
	}
}
