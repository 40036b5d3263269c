package testcase

import (
	"encoding/json"
	"strings"
)

// UnmarshalJSON reads test_cases optimistically: a missing or non-array
// value, or a non-object document, leaves TestCases nil instead of failing.
func (r *Result) UnmarshalJSON(b []byte) error {
	r.TestCases = nil
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(doc["test_cases"], &items); err != nil || items == nil {
		return nil
	}
	r.TestCases = make([]TestCase, 0, len(items))
	for _, it := range items {
		var tc TestCase
		_ = json.Unmarshal(it, &tc)
		r.TestCases = append(r.TestCases, tc)
	}
	return nil
}

// UnmarshalJSON accepts loosely typed model output: scalars of any JSON type
// become strings and steps may be a single string. Unusable fields stay empty.
func (tc *TestCase) UnmarshalJSON(b []byte) error {
	*tc = TestCase{}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil
	}
	tc.ID = looseString(fields["id"])
	tc.Title = looseString(fields["title"])
	tc.Preconditions = looseString(fields["preconditions"])
	tc.Steps = looseSteps(fields["steps"])
	tc.ExpectedResult = looseString(fields["expected_result"])
	tc.Priority = Priority(looseString(fields["priority"]))
	return nil
}

// looseString renders strings, numbers and booleans as text; anything else is "".
func looseString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

func looseSteps(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, looseString(it))
		}
		return out
	}
	if s := looseString(raw); s != "" {
		return []string{s}
	}
	return nil
}
