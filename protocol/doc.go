// Package protocol implements the structured text protocol spoken between a
// reasoning loop and the model: the fixed tag vocabulary, tag extraction, and
// the staged repair pipeline that turns near-JSON tool calls into parseable
// JSON objects.
//
// Repair never fails. When every stage is exhausted the output is an error
// payload whose name is ErrorToolName, so the loop can report the problem to
// the model as an observation instead of aborting.
package protocol
