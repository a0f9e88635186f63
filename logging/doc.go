// Package logging provides a minimal logging interface and adapters for reactmesh.
//
// The Logger interface defines the standard logging methods (Debug, Info, Warn, Error)
// that agents, tools and the workflow scheduler use for observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping an existing *slog.Logger
//   - StructuredLogger with component / run scoping and domain helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	agent, _ := agent.NewReactAgent(llm, tools, func(o *agent.Options) { o.Logger = logger })
//
// Log messages are dotted event names ("agent.step.start") followed by
// slog style key/value pairs.
package logging
