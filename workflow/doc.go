// Package workflow schedules member agents along their dependency edges.
//
// A Graph validates its edges with Kahn's algorithm before every run and then
// walks the agents depth-first from the first added member. A single step
// budget bounds the number of agent runs across the whole traversal, which
// also guards against pathological fan-out. Each agent's result is appended
// to the context buffer of its dependents before any of them starts.
package workflow
