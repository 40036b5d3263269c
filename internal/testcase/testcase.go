// Package testcase holds the test-case records produced by the model and the
// structural checks and exports built on them.
package testcase

// Priority is the model-assigned importance of a test case. Values outside
// High/Medium/Low are kept as-is.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// TestCase is one generated test scenario.
type TestCase struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Preconditions  string   `json:"preconditions"`
	Steps          []string `json:"steps"`
	ExpectedResult string   `json:"expected_result"`
	Priority       Priority `json:"priority"`
}

// Result is the success payload of /api/generate. TestCases is nil when the
// model omitted the array.
type Result struct {
	TestCases []TestCase `json:"test_cases"`
}
