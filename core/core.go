package core

import "github.com/hupe1980/reactmesh/logging"

// callLogger prefixes every entry with the correlation fields of one tool
// call. A nil logger is replaced by a NoOpLogger.
type callLogger struct {
	logger logging.Logger
	fields []any
}

func newCallLogger(l logging.Logger, runID, agentName, callID string) *callLogger {
	if l == nil {
		l = logging.NoOpLogger{}
	}
	fields := []any{"agent", agentName, "call_id", callID}
	if runID != "" {
		fields = append([]any{"run_id", runID}, fields...)
	}
	return &callLogger{logger: l, fields: fields}
}

// Logger returns the underlying logger without the call fields.
func (l *callLogger) Logger() logging.Logger {
	return l.logger
}

func (l *callLogger) with(args []any) []any {
	out := make([]any, 0, len(l.fields)+len(args))
	out = append(out, l.fields...)
	return append(out, args...)
}

// LogDebug logs a debug message tagged with the call fields.
func (l *callLogger) LogDebug(msg string, args ...any) {
	l.logger.Debug(msg, l.with(args)...)
}

// LogInfo logs an info message tagged with the call fields.
func (l *callLogger) LogInfo(msg string, args ...any) {
	l.logger.Info(msg, l.with(args)...)
}

// LogWarn logs a warning tagged with the call fields.
func (l *callLogger) LogWarn(msg string, args ...any) {
	l.logger.Warn(msg, l.with(args)...)
}

// LogError logs an error tagged with the call fields.
func (l *callLogger) LogError(msg string, args ...any) {
	l.logger.Error(msg, l.with(args)...)
}
