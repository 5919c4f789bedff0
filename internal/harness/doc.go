// Package harness executes YAML-described diff scenarios for conformance
// testing.
//
// A scenario names two versions of a document and the expected diff
// outcome. The harness runs the diff engine against an in-memory recording
// persistence, verifies the scenario's expectations, and can compare the
// full change-set trace against a golden file.
//
// Scenario files live in testdata/scenarios; golden traces in
// testdata/golden. Regenerate golden files with:
//
//	go test ./internal/harness -update
package harness
