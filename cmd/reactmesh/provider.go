package main

import (
	"fmt"
	"os"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/reactmesh/config"
	"github.com/hupe1980/reactmesh/logging"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/model/anthropic"
	"github.com/hupe1980/reactmesh/model/openai"
)

// newModel creates the transport described by cfg, paced and logged.
func newModel(cfg config.ModelConfig, logger *logging.StructuredLogger) (model.Model, error) {
	apiKey := os.Getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		return nil, fmt.Errorf("environment variable %s is not set", cfg.APIKeyEnv)
	}

	var m model.Model
	switch cfg.Provider {
	case config.ProviderOpenAI:
		m = openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Name
			o.BaseURL = cfg.BaseURL
			o.APIKey = apiKey
			if cfg.Temperature > 0 {
				o.Temperature = cfg.Temperature
			}
			if cfg.MaxTokens > 0 {
				o.MaxCompletionTokens = int64(cfg.MaxTokens)
			}
		})
	case config.ProviderAnthropic:
		m = anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.Name)
			o.BaseURL = cfg.BaseURL
			o.APIKey = apiKey
			if cfg.Temperature > 0 {
				o.Temperature = cfg.Temperature
			}
			if cfg.MaxTokens > 0 {
				o.MaxTokens = int64(cfg.MaxTokens)
			}
		})
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}

	m = model.NewRateLimitedModel(m, cfg.RequestsPerSecond, cfg.Burst)

	var callLogger model.CallLogger
	if logger != nil {
		callLogger = logger
	}
	return model.NewLoggingModel(m, callLogger), nil
}
