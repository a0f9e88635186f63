package agent

import (
	"strings"

	"github.com/hupe1980/reactmesh/internal/util"
	"github.com/hupe1980/reactmesh/protocol"
	"github.com/hupe1980/reactmesh/tool"
)

// ForcedAnswerInstruction is sent once the step limit is reached.
const ForcedAnswerInstruction = "You now have to provide a final response based on all the information provided without the use of any functions or thoughts."

const reactPromptTemplate = `You are a planning and function-calling AI model.
You can only generate the following steps:
- thought: use the {{.Thought}} XML tags to plan the next steps and make function calls with values you have available, so you can obtain more data to call other functions with
- function calls: use the {{.ToolCall}} XML tags to request more information, which will be given to you as observation in {{.Observation}} XML tags
- answer: use the {{.Answer}} XML tags to deliver the final answer
You operate in a loop between the thought, function calls and observation steps - advancing one step at a time. When you have enough data to provide the final answer you can do so at any step.

Function signatures are provided within {{.Tools}} XML tags. Call one or more functions to assist with the user query without making assumptions about argument values.
Pay close attention to the name and type of each parameter. Return each function call as a JSON object within {{.ToolCall}} XML tags, formatted as follows:
{{.ToolCallOpen}}
{"name": <function-name>, "arguments": <arguments-dict>}
{{.ToolCallClose}}

Here are the available functions:
`

const toolResultsPromptTemplate = `Always check if the function has already been called and the results are in the {{.Observation}} XML tags.
If you have enough information to answer the user query, you must do so within {{.Answer}} XML tags, without referring to any functions!`

const toolUsePromptTemplate = `You are a function-calling AI model.
Function signatures are provided within {{.Tools}} XML tags. Call one or more functions to assist with the user query without making assumptions about argument values.
Pay close attention to the name and type of each parameter. Return each function call as a JSON object within {{.ToolCall}} XML tags, formatted as follows:
{{.ToolCallOpen}}
{"name": <function-name>, "arguments": <arguments-dict>}
{{.ToolCallClose}}

Here are the available functions:
`

const toolUseResultsPromptTemplate = `Always check if the function has already been called and the results are in the {{.ToolResults}} XML tags. If so, you must answer the user without referring to any functions!`

const oneShotPromptTemplate = `
Example user query:
{{.QuestionOpen}}What's the temperature in London?{{.QuestionClose}}

You can output a thought:
{{.ThoughtOpen}}I need to get the temperature in London{{.ThoughtClose}}

You can output function calls with available arguments, each like this:
{{.ToolCallOpen}}{"name": "get_current_temperature", "arguments": {"location": "London", "unit": "celsius"}}{{.ToolCallClose}}

You will receive an observation for the function calls:
{{.ObservationOpen}}{"temperature": 15, "unit": "celsius"}{{.ObservationClose}}

You have enough information and must provide the final answer:
{{.AnswerOpen}}The temperature in London is 15 degrees celsius{{.AnswerClose}}

Additional instructions:
Always aim to answer the user query fully, but if the user query cannot be answered with provided tools, respond freely within {{.Answer}} XML tags.
`

const memberPromptTemplate = `
You are the {{.Name}}, collaborating with a team in a workflow.
{{.Backstory}}

Instructions:
1. Carefully analyze the context provided in the {{.ContextTag}} XML tags (if available)
2. Focus on completing your specific task as described
3. Provide your response in the expected output format
4. Be thorough and precise in your work
5. Remember that your output will be passed to the next agent in the workflow (if any)

Your task is to:
{{.Task}}

Your task should result in the following output:
{{.ExpectedOutput}}

Process the following context:
{{.ContextOpen}}
{{.Context}}
{{.ContextClose}}

`

func tagVars() map[string]any {
	pair := func(t protocol.Tag) string { return t.Open() + t.Close() }
	return map[string]any{
		"Thought":          pair(protocol.Thought),
		"ToolCall":         pair(protocol.ToolCall),
		"Observation":      pair(protocol.Observation),
		"Answer":           pair(protocol.Answer),
		"Tools":            pair(protocol.Tools),
		"ContextTag":       pair(protocol.Context),
		"ToolResults":      pair(protocol.ToolResults),
		"QuestionOpen":     protocol.Question.Open(),
		"QuestionClose":    protocol.Question.Close(),
		"ThoughtOpen":      protocol.Thought.Open(),
		"ThoughtClose":     protocol.Thought.Close(),
		"ToolCallOpen":     protocol.ToolCall.Open(),
		"ToolCallClose":    protocol.ToolCall.Close(),
		"ObservationOpen":  protocol.Observation.Open(),
		"ObservationClose": protocol.Observation.Close(),
		"AnswerOpen":       protocol.Answer.Open(),
		"AnswerClose":      protocol.Answer.Close(),
		"ContextOpen":      protocol.Context.Open(),
		"ContextClose":     protocol.Context.Close(),
	}
}

// renderSystemPrompt assembles backstory, protocol instructions, tool
// definitions, the observation reminder and the worked example.
func renderSystemPrompt(backstory string, defs []tool.Definition) (string, error) {
	vars := tagVars()

	instructions, err := util.RenderTemplate(reactPromptTemplate, vars)
	if err != nil {
		return "", err
	}
	results, err := util.RenderTemplate(toolResultsPromptTemplate, vars)
	if err != nil {
		return "", err
	}
	example, err := util.RenderTemplate(oneShotPromptTemplate, vars)
	if err != nil {
		return "", err
	}

	return strings.Join([]string{backstory, instructions, renderDefinitions(defs), results, example}, "\n"), nil
}

func renderToolUsePrompt(backstory string, defs []tool.Definition) (string, error) {
	vars := tagVars()

	instructions, err := util.RenderTemplate(toolUsePromptTemplate, vars)
	if err != nil {
		return "", err
	}
	results, err := util.RenderTemplate(toolUseResultsPromptTemplate, vars)
	if err != nil {
		return "", err
	}

	parts := []string{instructions, renderDefinitions(defs), results}
	if backstory != "" {
		parts = append([]string{backstory}, parts...)
	}
	return strings.Join(parts, "\n"), nil
}

func renderDefinitions(defs []tool.Definition) string {
	rendered := make([]string, 0, len(defs))
	for _, d := range defs {
		rendered = append(rendered, d.String())
	}
	return protocol.Tools.Block(strings.Join(rendered, ",\n\n"))
}

func renderMemberPrompt(name, backstory, task, expectedOutput, context string) (string, error) {
	vars := tagVars()
	vars["Name"] = name
	vars["Backstory"] = backstory
	vars["Task"] = task
	vars["ExpectedOutput"] = expectedOutput
	vars["Context"] = context
	return util.RenderTemplate(memberPromptTemplate, vars)
}
