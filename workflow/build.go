package workflow

import (
	"fmt"

	"github.com/hupe1980/reactmesh/agent"
	"github.com/hupe1980/reactmesh/config"
	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/logging"
	"github.com/hupe1980/reactmesh/model"
	"github.com/hupe1980/reactmesh/tool"
)

// BuildOptions configures Build.
type BuildOptions struct {
	Logger logging.Logger
	Sink   core.EventSink
	// Tools overrides how tool names from the config are resolved. Defaults to
	// the built-in tools.
	Tools func(name string) (tool.Tool, error)
}

// Build creates the graph described by cfg. Every agent shares llm. The
// returned graph has been validated.
func Build(cfg config.Config, llm model.Model, optFns ...func(o *BuildOptions)) (*Graph, error) {
	opts := BuildOptions{
		Logger: logging.NoOpLogger{},
		Sink:   core.NopSink{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Tools == nil {
		builtinOpts := tool.BuiltinOptions{OutputDir: cfg.Tools.OutputDir}
		opts.Tools = func(name string) (tool.Tool, error) { return tool.Builtin(name, builtinOpts) }
	}

	g := NewGraph(func(o *Options) { o.Logger = opts.Logger })

	for _, ac := range cfg.Agents {
		tools := make([]tool.Tool, 0, len(ac.Tools))
		for _, name := range ac.Tools {
			t, err := opts.Tools(name)
			if err != nil {
				return nil, fmt.Errorf("agent %s: %w", ac.Name, err)
			}
			tools = append(tools, t)
		}

		maxSteps := ac.MaxSteps
		m, err := agent.NewMemberAgent(llm, ac.Name, ac.Backstory, ac.Task, ac.ExpectedOutput, tools,
			func(o *agent.Options) {
				if maxSteps > 0 {
					o.MaxSteps = maxSteps
				}
				o.Logger = opts.Logger
				o.Sink = opts.Sink
			})
		if err != nil {
			return nil, err
		}
		if err := g.AddAgent(m); err != nil {
			return nil, err
		}
	}

	for _, ac := range cfg.Agents {
		after, _ := g.Agent(ac.Name)
		for _, dep := range ac.DependsOn {
			before, ok := g.Agent(dep)
			if !ok {
				return nil, fmt.Errorf("agent %s depends on unknown agent %q", ac.Name, dep)
			}
			if err := g.Link(before, after); err != nil {
				return nil, err
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}
