package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/reactmesh/agent"
	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/logging"
)

// Options configures a Graph.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Graph is a set of member agents connected by dependency edges.
type Graph struct {
	members []*agent.MemberAgent
	index   map[*agent.MemberAgent]int
	byName  map[string]*agent.MemberAgent
	opts    Options
}

// NewGraph creates an empty graph.
func NewGraph(optFns ...func(o *Options)) *Graph {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Graph{
		index:  map[*agent.MemberAgent]int{},
		byName: map[string]*agent.MemberAgent{},
		opts:   opts,
	}
}

// AddAgent appends a to the graph. The first added agent is the traversal
// root. Adding the same agent twice is a no-op.
func (g *Graph) AddAgent(a *agent.MemberAgent) error {
	if a == nil {
		return errors.New("cannot add nil agent")
	}
	if _, ok := g.index[a]; ok {
		return nil
	}
	if _, ok := g.byName[a.Name()]; ok {
		return fmt.Errorf("duplicate agent name %q", a.Name())
	}

	g.index[a] = len(g.members)
	g.byName[a.Name()] = a
	g.members = append(g.members, a)

	return nil
}

// Agent returns the member registered under name.
func (g *Graph) Agent(name string) (*agent.MemberAgent, bool) {
	a, ok := g.byName[name]
	return a, ok
}

// Link declares that after depends on before. Both must be members.
func (g *Graph) Link(before, after *agent.MemberAgent) error {
	for _, a := range []*agent.MemberAgent{before, after} {
		if !g.has(a) {
			return fmt.Errorf("link: agent %s is not part of the workflow", nameOf(a))
		}
	}
	return before.AddDependent(after)
}

// Members returns the agents in insertion order.
func (g *Graph) Members() []*agent.MemberAgent {
	return append([]*agent.MemberAgent(nil), g.members...)
}

func (g *Graph) has(a *agent.MemberAgent) bool {
	if a == nil {
		return false
	}
	_, ok := g.index[a]
	return ok
}

// TopologicalSort orders the members so that every agent comes after all of
// its dependencies. Edges to agents outside the graph are ignored. A cycle
// yields an error wrapping core.ErrCyclicGraph and no order.
func (g *Graph) TopologicalSort() ([]*agent.MemberAgent, error) {
	inDegree := make(map[*agent.MemberAgent]int, len(g.members))
	for _, a := range g.members {
		n := 0
		for _, d := range a.Dependencies() {
			if g.has(d) {
				n++
			}
		}
		inDegree[a] = n
	}

	queue := make([]*agent.MemberAgent, 0, len(g.members))
	for _, a := range g.members {
		if inDegree[a] == 0 {
			queue = append(queue, a)
		}
	}

	sorted := make([]*agent.MemberAgent, 0, len(g.members))
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		sorted = append(sorted, a)

		for _, d := range a.Dependents() {
			if !g.has(d) {
				continue
			}
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(sorted) < len(g.members) {
		var stuck []string
		for _, a := range g.members {
			if inDegree[a] > 0 {
				stuck = append(stuck, a.Name())
			}
		}
		return nil, fmt.Errorf("%w: cannot order agents [%s]", core.ErrCyclicGraph, strings.Join(stuck, ", "))
	}

	return sorted, nil
}

// Validate checks that the graph is non-empty and acyclic.
func (g *Graph) Validate() error {
	if len(g.members) == 0 {
		return core.ErrEmptyGraph
	}
	_, err := g.TopologicalSort()
	return err
}

// Generate validates the graph and runs it depth-first from the first added
// agent. At most maxSteps agent runs happen in total; maxSteps <= 0 removes
// the bound. The last non-empty result is returned.
func (g *Graph) Generate(ctx context.Context, maxSteps int) (string, error) {
	if err := g.Validate(); err != nil {
		return "", err
	}

	ctx, runID := core.EnsureRunID(ctx)
	logger := g.opts.Logger
	start := time.Now()

	root := g.members[0]
	g.warnUnreachable(root)

	logger.Info("workflow.run.start", "run_id", runID, "root", root.Name(),
		"agents", len(g.members), "max_steps", maxSteps)

	budget := core.NewStepBudget(maxSteps)
	stack := []*agent.MemberAgent{root}
	last := ""

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return last, err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !budget.Take() {
			logger.Info("workflow.budget.exhausted", "run_id", runID, "used", budget.Used(), "skipped", current.Name())
			break
		}

		logger.Debug("workflow.agent.start", "run_id", runID, "agent", current.Name(), "step", budget.Used())

		result, err := current.Generate(ctx)
		if err != nil {
			logger.Error("workflow.agent.error", "run_id", runID, "agent", current.Name(), "error", err.Error())
			return last, fmt.Errorf("workflow: agent %s: %w", current.Name(), err)
		}
		if result != "" {
			last = result
		}

		logger.Info("workflow.agent.complete", "run_id", runID, "agent", current.Name(), "chars", len(result))

		dependents := current.Dependents()
		for i := len(dependents) - 1; i >= 0; i-- {
			if g.has(dependents[i]) {
				stack = append(stack, dependents[i])
			}
		}
	}

	logger.Info("workflow.run.complete", "run_id", runID, "runs", budget.Used(),
		"duration_ms", time.Since(start).Milliseconds())

	return last, nil
}

// warnUnreachable logs members the traversal from root can never visit.
func (g *Graph) warnUnreachable(root *agent.MemberAgent) {
	seen := map[*agent.MemberAgent]bool{root: true}
	queue := []*agent.MemberAgent{root}
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		for _, d := range a.Dependents() {
			if g.has(d) && !seen[d] {
				seen[d] = true
				queue = append(queue, d)
			}
		}
	}

	for _, a := range g.members {
		if !seen[a] {
			g.opts.Logger.Warn("workflow.agent.unreachable", "agent", a.Name(), "root", root.Name())
		}
	}
}

func nameOf(a *agent.MemberAgent) string {
	if a == nil {
		return "<nil>"
	}
	return a.Name()
}
