package testcase

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"ID", "Title", "Preconditions", "Steps", "Expected Result", "Priority"}

// WriteCSV writes cases as CSV with a header row. Steps are joined into one
// cell, one numbered step per line.
func WriteCSV(w io.Writer, cases []TestCase) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, tc := range cases {
		row := []string{tc.ID, tc.Title, tc.Preconditions, NumberedSteps(tc.Steps), tc.ExpectedResult, string(tc.Priority)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// NumberedSteps renders steps as "1. a\n2. b".
func NumberedSteps(steps []string) string {
	var b strings.Builder
	for i, s := range steps {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(s)
	}
	return b.String()
}
