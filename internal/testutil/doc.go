// Package testutil contains helpers used across tests to reduce boilerplate
// when constructing audit events, capturing recorded events and scripting
// model behaviour with testify mocks. They are not intended for production
// usage.
package testutil
