// Package audit stores the events agents and workflows emit while they run.
//
// Both stores implement core.EventSink. InMemoryStore keeps events in a
// process local map and suits tests and one-shot runs; SQLiteStore persists
// them in a run_events table so past runs can be inspected later.
package audit
