package config

import "strings"

// Normalize fills in defaults and canonicalizes names.
func Normalize(cfg *Config) {
	cfg.Model.Provider = strings.ToLower(strings.TrimSpace(cfg.Model.Provider))
	if cfg.Model.Provider == "" {
		cfg.Model.Provider = ProviderOpenAI
	}
	if cfg.Model.APIKeyEnv == "" {
		cfg.Model.APIKeyEnv = DefaultAPIKeyEnv(cfg.Model.Provider)
	}
	if cfg.Model.RequestsPerSecond > 0 && cfg.Model.Burst == 0 {
		cfg.Model.Burst = 1
	}
	if cfg.MaxSteps == 0 {
		cfg.MaxSteps = DefaultMaxSteps
	}
	if cfg.Tools.OutputDir == "" {
		cfg.Tools.OutputDir = DefaultOutputDir
	}
	for i := range cfg.Agents {
		a := &cfg.Agents[i]
		a.Name = strings.TrimSpace(a.Name)
		if a.MaxSteps == 0 {
			a.MaxSteps = DefaultAgentMaxSteps
		}
		for j := range a.Tools {
			a.Tools[j] = strings.TrimSpace(a.Tools[j])
		}
		for j := range a.DependsOn {
			a.DependsOn[j] = strings.TrimSpace(a.DependsOn[j])
		}
	}
}
