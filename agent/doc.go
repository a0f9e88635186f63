// Package agent contains the reasoning agents of reactmesh.
//
//  1. ReactAgent drives a model through bounded thought / tool call /
//     observation iterations until a final answer appears or the step limit
//     is reached, after which one forced final turn is issued.
//  2. MemberAgent wraps a ReactAgent with a workflow identity (name, task,
//     expected output), an inherited context buffer and the symmetric
//     dependency relation used by the workflow scheduler.
//  3. ToolUseAgent makes one round of tool calls and answers with a second
//     generation that sees the results.
//
// Model output is treated as untrusted text: malformed tool calls, unknown
// tools and tool failures become observations for the model rather than
// errors for the caller. Only transport failures and cancellation surface as
// errors.
package agent
