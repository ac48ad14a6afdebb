package config

import _ "embed"

//go:embed example_config.yaml
var exampleConfigYAML []byte

// ExampleConfiguration returns a sample input document covering the common cases:
// a revision candidate with a bonus, a short-time worker, an officer over 70, an employee
// on childcare leave and a new hire without a birthday on file.
func ExampleConfiguration() []byte {
	out := make([]byte, len(exampleConfigYAML))
	copy(out, exampleConfigYAML)
	return out
}
