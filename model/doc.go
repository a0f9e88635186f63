// Package model defines the LLM transport abstraction used by reasoning loops.
//
// A Model takes the full ordered conversation and returns the completion text.
// There is no streaming and no native function calling: tool use is expressed
// in the text protocol (see package protocol), which keeps every provider
// interchangeable.
//
// Sub-packages provide adapters for OpenAI compatible endpoints (model/openai)
// and Anthropic (model/anthropic). MockModel is a scripted in-memory transport
// for tests and examples.
package model
