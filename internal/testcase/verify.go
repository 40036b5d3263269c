package testcase

import "encoding/json"

// Status is the token printed by the verify tool.
type Status string

const (
	StatusSchema     Status = "VALID_JSON_SCHEMA"
	StatusObject     Status = "VALID_JSON_OBJECT"
	StatusInvalid    Status = "INVALID_SCHEMA"
	StatusParseError Status = "JSON_PARSE_ERROR"
)

// OK reports whether the status is an accepting one.
func (s Status) OK() bool { return s == StatusSchema || s == StatusObject }

// Verify checks whether input parses as JSON and looks like either a generate
// result (a "test_cases" array) or a single test case (truthy "id" and "steps").
// A top-level null counts as a parse error since it cannot be inspected.
func Verify(input string) Status {
	var data any
	if err := json.Unmarshal([]byte(input), &data); err != nil || data == nil {
		return StatusParseError
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return StatusInvalid
	}
	if _, isArray := obj["test_cases"].([]any); isArray {
		return StatusSchema
	}
	if truthy(obj["id"]) && truthy(obj["steps"]) {
		return StatusObject
	}
	return StatusInvalid
}

// truthy follows loose scripting truthiness: empty strings, zero, false and
// null are false; arrays and objects are always true, even when empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
