// Package reactmesh provides a high-level façade for building workflows of
// reasoning agents. Most applications interact with this package by:
//  1. Creating a ReactMesh via New() (optionally overriding the audit store,
//     logger and step budgets)
//  2. Adding member agents with NewAgent and wiring them with Link
//  3. Running the workflow with Run and inspecting the audit trail with Events
//
// The façade delegates scheduling to workflow.Graph and the reasoning loop
// to agent.MemberAgent. All defaults are safe for local development and
// testing; the CLI swaps the in-memory audit store for SQLite.
package reactmesh

import (
	"context"

	"github.com/hupe1980/reactmesh/agent"
	"github.com/hupe1980/reactmesh/audit"
	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/logging"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/tool"
	"github.com/hupe1980/reactmesh/workflow"
)

// Options configures the ReactMesh instance.
type Options struct {
	// MaxSteps bounds the number of agent runs of one workflow run. Zero
	// or less removes the bound.
	MaxSteps int

	// AgentMaxSteps bounds the reasoning loop of every agent created through
	// NewAgent.
	AgentMaxSteps int

	// Store receives and keeps the audit events (defaults to an in-memory store).
	Store audit.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ReactMesh aggregates a workflow graph and the services its agents share.
type ReactMesh struct {
	opts  Options
	graph *workflow.Graph
}

// New creates a new ReactMesh instance with optional overrides.
func New(optFns ...func(o *Options)) *ReactMesh {
	opts := Options{
		MaxSteps:      10,
		AgentMaxSteps: 10,
		Store:         audit.NewInMemoryStore(),
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Store == nil {
		opts.Store = audit.NewInMemoryStore()
	}

	g := workflow.NewGraph(func(o *workflow.Options) { o.Logger = opts.Logger })

	return &ReactMesh{opts: opts, graph: g}
}

// NewAgent creates a member agent sharing the mesh's logger and store and
// adds it to the workflow. The first agent added is the entry point.
func (m *ReactMesh) NewAgent(
	llm model.Model,
	name, backstory, task, expectedOutput string,
	tools ...tool.Tool,
) (*agent.MemberAgent, error) {
	a, err := agent.NewMemberAgent(llm, name, backstory, task, expectedOutput, tools, func(o *agent.Options) {
		o.MaxSteps = m.opts.AgentMaxSteps
		o.Logger = m.opts.Logger
		o.Sink = m.opts.Store
	})
	if err != nil {
		return nil, err
	}
	if err := m.graph.AddAgent(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Link declares that after runs once before has produced its result.
func (m *ReactMesh) Link(before, after *agent.MemberAgent) error {
	return m.graph.Link(before, after)
}

// Graph returns the underlying workflow graph.
func (m *ReactMesh) Graph() *workflow.Graph { return m.graph }

// Run executes the workflow and returns the run id with the last result.
func (m *ReactMesh) Run(ctx context.Context) (string, string, error) {
	ctx, runID := core.EnsureRunID(ctx)
	result, err := m.graph.Generate(ctx, m.opts.MaxSteps)
	return runID, result, err
}

// Events returns the audit trail of a run.
func (m *ReactMesh) Events(ctx context.Context, runID string) ([]core.Event, error) {
	return m.opts.Store.Events(ctx, runID)
}

// Close releases the audit store.
func (m *ReactMesh) Close() error { return m.opts.Store.Close() }
