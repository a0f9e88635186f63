// Package core provides the foundational domain types shared by every
// reactmesh component:
//
//   - Message / History (the bounded conversation log of a reasoning loop)
//   - StepBudget (the shared agent execution counter of a workflow run)
//   - ToolContext (the scope handed to tool implementations)
//   - Event / EventSink (audit records emitted while agents run)
//
// The package keeps orchestration concerns (loops, scheduling, transports)
// out of scope and only exposes small types and interfaces.
package core
