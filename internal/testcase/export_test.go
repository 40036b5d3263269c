package testcase

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	cases := []TestCase{
		{ID: "TC-001", Title: "Login, happy path", Preconditions: "User exists", Steps: []string{"Open page", "Submit"}, ExpectedResult: "Dashboard shown", Priority: PriorityHigh},
		{ID: "TC-002", Title: "Wrong password", Steps: nil, ExpectedResult: "Error shown", Priority: PriorityLow},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cases))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])
	require.Equal(t, "Login, happy path", rows[1][1])
	require.Equal(t, "1. Open page\n2. Submit", rows[1][3])
	require.Equal(t, "", rows[2][3])
	require.Equal(t, "Low", rows[2][5])
}

func TestNumberedSteps(t *testing.T) {
	steps := make([]string, 11)
	for i := range steps {
		steps[i] = "s"
	}
	out := NumberedSteps(steps)
	require.Contains(t, out, "\n11. s")
	require.Equal(t, "", NumberedSteps(nil))
}
