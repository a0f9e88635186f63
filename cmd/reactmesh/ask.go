package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/reactmesh/agent"
	"github.com/hupe1980/reactmesh/config"
	"github.com/hupe1980/reactmesh/core"
	"github.com/hupe1980/reactmesh/tool"
)

type askFlags struct {
	provider  string
	model     string
	baseURL   string
	apiKeyEnv string
	backstory string
	tools     []string
	outputDir string
	maxSteps  int
	single    bool
}

type answerer interface {
	Name() string
	Generate(ctx context.Context, query string) (string, error)
}

func newAskCmd(root *rootFlags) *cobra.Command {
	f := &askFlags{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a single question with one agent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := root.logger("", "")
			if err != nil {
				return err
			}

			mc := config.ModelConfig{
				Provider:  strings.ToLower(f.provider),
				Name:      f.model,
				BaseURL:   f.baseURL,
				APIKeyEnv: f.apiKeyEnv,
			}
			if mc.APIKeyEnv == "" {
				mc.APIKeyEnv = config.DefaultAPIKeyEnv(mc.Provider)
			}

			llm, err := modelFactory(mc, logger)
			if err != nil {
				return err
			}

			builtinOpts := tool.BuiltinOptions{OutputDir: f.outputDir}
			tools := make([]tool.Tool, 0, len(f.tools))
			for _, name := range f.tools {
				t, err := tool.Builtin(strings.TrimSpace(name), builtinOpts)
				if err != nil {
					return err
				}
				tools = append(tools, t)
			}

			optFn := func(o *agent.Options) {
				o.Name = "ask"
				o.MaxSteps = f.maxSteps
				o.Backstory = agent.NewInstructionFromText(f.backstory)
				o.Logger = logger
			}

			var a answerer
			steps := f.maxSteps
			if f.single {
				a, err = agent.NewToolUseAgent(llm, tools, optFn)
				steps = 1
			} else {
				a, err = agent.NewReactAgent(llm, tools, optFn)
			}
			if err != nil {
				return err
			}

			ctx, runID := core.EnsureRunID(commandContext(cmd))
			run := logger.WithRun(runID, a.Name())

			start := time.Now()
			answer, err := a.Generate(ctx, strings.Join(args, " "))
			run.LogAgentRun(a.Name(), steps, time.Since(start), err == nil, err)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), answer)

			return nil
		},
	}

	cmd.Flags().StringVar(&f.provider, "provider", config.ProviderOpenAI, "Model provider: openai or anthropic")
	cmd.Flags().StringVar(&f.model, "model", "gpt-4o-mini", "Model name")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "OpenAI compatible base URL")
	cmd.Flags().StringVar(&f.apiKeyEnv, "api-key-env", "", "Environment variable holding the API key")
	cmd.Flags().StringVar(&f.backstory, "backstory", "", "Text opening the system prompt")
	cmd.Flags().StringSliceVar(&f.tools, "tools", nil, "Comma separated built-in tools")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", config.DefaultOutputDir, "Directory for submit_content")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 10, "Maximum reasoning steps")
	cmd.Flags().BoolVar(&f.single, "single-round", false, "Make one round of tool calls and answer without the reasoning loop")

	return cmd
}
