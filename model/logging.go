package model

import (
	"context"
	"time"

	"github.com/hupe1980/reactmesh/core"
)

// CallLogger receives one record per model call. *logging.StructuredLogger
// implements it.
type CallLogger interface {
	LogLLMCall(model string, dur time.Duration, success bool, err error)
}

// LoggingModel reports the latency and outcome of every call to a CallLogger.
type LoggingModel struct {
	next   Model
	logger CallLogger
}

// NewLoggingModel wraps next. A nil logger returns next unchanged.
func NewLoggingModel(next Model, logger CallLogger) Model {
	if logger == nil {
		return next
	}
	return &LoggingModel{next: next, logger: logger}
}

// Generate delegates and logs the call.
func (m *LoggingModel) Generate(ctx context.Context, messages []core.Message) (string, error) {
	start := time.Now()
	out, err := m.next.Generate(ctx, messages)
	m.logger.LogLLMCall(m.next.Info().Name, time.Since(start), err == nil, err)
	return out, err
}

// Info returns the wrapped model's info.
func (m *LoggingModel) Info() Info { return m.next.Info() }
