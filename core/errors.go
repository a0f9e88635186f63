package core

import "errors"

var (
	// ErrCyclicGraph is returned when the workflow dependency graph contains a cycle.
	ErrCyclicGraph = errors.New("dependency graph contains a cycle")
	// ErrEmptyGraph is returned when a workflow without agents is validated or run.
	ErrEmptyGraph = errors.New("workflow has no agents")
	// ErrNilModel is returned when an agent is constructed without a model.
	ErrNilModel = errors.New("model must not be nil")
	// ErrDuplicateTool is returned when two tools of one agent share a name.
	ErrDuplicateTool = errors.New("duplicate tool name")
	// ErrSelfDependency is returned when an agent is linked to itself.
	ErrSelfDependency = errors.New("agent cannot depend on itself")
)
