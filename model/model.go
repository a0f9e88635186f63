package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/reactmesh/core"
)

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by agents to drive generation.
// Transport failures are returned as errors; the caller decides how to react.
type Model interface {
	Generate(ctx context.Context, messages []core.Message) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// Func adapts a plain function to the Model interface.
type Func func(ctx context.Context, messages []core.Message) (string, error)

// Generate implements Model.
func (f Func) Generate(ctx context.Context, messages []core.Message) (string, error) {
	return f(ctx, messages)
}

// Info implements Model.
func (f Func) Info() Info { return Info{Name: "func", Provider: "func"} }

// MockModel is a scripted in-memory Model useful for tests & examples. Each
// Generate call pops the next scripted response and records the messages it
// received.
type MockModel struct {
	mu        sync.Mutex
	info      Info
	responses []string
	errs      map[int]error
	fallback  *string
	calls     [][]core.Message
}

// NewMockModel constructs a MockModel answering with responses in order.
func NewMockModel(responses ...string) *MockModel {
	return &MockModel{
		info:      Info{Name: "mock", Provider: "mock"},
		responses: append([]string(nil), responses...),
		errs:      map[int]error{},
	}
}

// AddResponse appends a scripted completion.
func (m *MockModel) AddResponse(response string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response)
	return m
}

// FailOn makes the call with the given zero-based index return err.
func (m *MockModel) FailOn(call int, err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[call] = err
	return m
}

// WithFallback sets the completion returned once the script is exhausted.
func (m *MockModel) WithFallback(response string) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = &response
	return m
}

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, messages []core.Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.calls)
	m.calls = append(m.calls, append([]core.Message(nil), messages...))

	if err, ok := m.errs[idx]; ok {
		return "", err
	}
	if len(m.responses) == 0 {
		if m.fallback != nil {
			return *m.fallback, nil
		}
		return "", fmt.Errorf("mock model: no scripted response for call %d", idx+1)
	}

	out := m.responses[0]
	m.responses = m.responses[1:]

	return out, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

// Calls returns the message lists received so far, one entry per call.
func (m *MockModel) Calls() [][]core.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]core.Message, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of Generate calls.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
