package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/tool"
)

// edgeMu serializes edge mutations so both ends of a link always change
// together.
var edgeMu sync.Mutex

// MemberAgent is a ReactAgent with a task, an expected output and links to
// the agents it depends on and the agents depending on it. Results flow from
// an agent into the context buffer of each of its dependents.
type MemberAgent struct {
	*ReactAgent

	backstory      string
	task           string
	expectedOutput string

	mu      sync.Mutex
	context string

	dependencies []*MemberAgent
	dependents   []*MemberAgent
}

// NewMemberAgent creates a workflow member. The backstory opens the system
// prompt and is repeated in the member prompt.
func NewMemberAgent(llm model.Model, name, backstory, task, expectedOutput string, tools []tool.Tool, optFns ...func(o *Options)) (*MemberAgent, error) {
	if name == "" {
		return nil, errors.New("agent name must not be empty")
	}

	fns := append([]func(o *Options){func(o *Options) {
		o.Name = name
		o.Backstory = NewInstructionFromText(backstory)
	}}, optFns...)
	react, err := NewReactAgent(llm, tools, fns...)
	if err != nil {
		return nil, err
	}

	return &MemberAgent{
		ReactAgent:     react,
		backstory:      backstory,
		task:           task,
		expectedOutput: expectedOutput,
	}, nil
}

// Task returns the task description.
func (m *MemberAgent) Task() string { return m.task }

// ExpectedOutput returns the expected output description.
func (m *MemberAgent) ExpectedOutput() string { return m.expectedOutput }

// Backstory returns the member backstory.
func (m *MemberAgent) Backstory() string { return m.backstory }

// AddDependent declares that other runs after m and receives its result.
func (m *MemberAgent) AddDependent(other *MemberAgent) error {
	return link(m, other)
}

// AddDependency declares that m runs after other and receives its result.
func (m *MemberAgent) AddDependency(other *MemberAgent) error {
	return link(other, m)
}

func link(from, to *MemberAgent) error {
	if from == nil || to == nil {
		return errors.New("cannot link nil agent")
	}
	if from == to {
		return fmt.Errorf("%w: %s", core.ErrSelfDependency, from.Name())
	}

	edgeMu.Lock()
	defer edgeMu.Unlock()

	for _, d := range from.dependents {
		if d == to {
			return nil
		}
	}

	from.dependents = append(from.dependents, to)
	to.dependencies = append(to.dependencies, from)

	return nil
}

// Dependencies returns the agents m depends on, in link order.
func (m *MemberAgent) Dependencies() []*MemberAgent {
	edgeMu.Lock()
	defer edgeMu.Unlock()
	return append([]*MemberAgent(nil), m.dependencies...)
}

// Dependents returns the agents depending on m, in link order.
func (m *MemberAgent) Dependents() []*MemberAgent {
	edgeMu.Lock()
	defer edgeMu.Unlock()
	return append([]*MemberAgent(nil), m.dependents...)
}

// AddContext appends text to the inherited context buffer.
func (m *MemberAgent) AddContext(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.context += "\n" + text + "\n"
}

// Context returns the inherited context accumulated so far.
func (m *MemberAgent) Context() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.context
}

// Prompt renders the member prompt over the current context.
func (m *MemberAgent) Prompt() (string, error) {
	return renderMemberPrompt(m.Name(), m.backstory, m.task, m.expectedOutput, m.Context())
}

// Generate runs the reasoning loop over the member prompt and hands the
// result to every dependent.
func (m *MemberAgent) Generate(ctx context.Context) (string, error) {
	prompt, err := m.Prompt()
	if err != nil {
		return "", fmt.Errorf("agent %s: render prompt: %w", m.Name(), err)
	}

	result, err := m.ReactAgent.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	m.record(ctx, core.EventAgentResult, 0, result)

	for _, d := range m.Dependents() {
		d.AddContext(result)
	}

	return result, nil
}
