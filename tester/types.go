package tester

import "time"

// TestCase is one input/expectation pair supplied by the caller per run.
// Cases are transient; the tester never persists them.
type TestCase struct {
	// Name labels the case in results.
	Name string `json:"name"`

	// Input is the candidate input record, validated against the bound
	// definition's input parameters before the executor runs.
	Input map[string]any `json:"input"`

	// ExpectedOutput, when set, is compared structurally against the
	// executor's output.
	ExpectedOutput map[string]any `json:"expected_output,omitempty"`

	// ExpectedError, when set, must appear as a substring of the error
	// message the executor fails with.
	ExpectedError string `json:"expected_error,omitempty"`

	// Timeout overrides the definition's execution budget for this case.
	Timeout time.Duration `json:"timeout,omitempty"`
}

// TestResult is the recorded outcome of running one case. Results are
// produced fresh per execution and never persisted by the tester.
type TestResult struct {
	// Name echoes the test case name.
	Name string `json:"name"`

	// Passed reports whether the case met its expectation.
	Passed bool `json:"passed"`

	// Duration is how long the case took, including validation.
	Duration time.Duration `json:"duration"`

	// Output is the executor's output when it completed.
	Output map[string]any `json:"output,omitempty"`

	// Error carries the validation message, the executor's error text, or
	// the fixed timeout message. Empty when the case produced no error.
	Error string `json:"error,omitempty"`

	// Expected echoes the case's expected output for failed comparisons.
	Expected map[string]any `json:"expected,omitempty"`
}

// SuiteResult aggregates the outcomes of a sequential batch of cases.
// Results preserve the input order.
type SuiteResult struct {
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
	Results  []TestResult  `json:"results"`
}
