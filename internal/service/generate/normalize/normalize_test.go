package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutput_Strict(t *testing.T) {
	out, err := Output("  {\n \"test_cases\": [ ] }\n", Strict)
	require.NoError(t, err)
	require.Equal(t, `{"test_cases":[]}`, string(out))

	_, err = Output("not json", Strict)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid character")

	_, err = Output("```json\n{\"a\":1}\n```", Strict)
	require.Error(t, err)
}

func TestOutput_Lenient(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced with info string", "```json\n{\"a\": 1}\n```", `{"a":1}`},
		{"bare fence", "```\n[1, 2]\n```", `[1,2]`},
		{"trailing commentary", "Here you go:\n{\"a\":{\"b\":\"}\"}}\nHope this helps!", `{"a":{"b":"}"}}`},
		{"escaped quote in string", `x {"q":"say \"hi\" {"} y`, `{"q":"say \"hi\" {"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Output(tc.in, Lenient)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(out))
		})
	}
}

func TestOutput_LenientReportsOriginalError(t *testing.T) {
	_, strictErr := Output("no braces here", Strict)
	_, lenientErr := Output("no braces here", Lenient)
	require.Error(t, lenientErr)
	require.Equal(t, strictErr.Error(), lenientErr.Error())

	_, err := Output(`{"unterminated": [1, 2`, Lenient)
	require.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	got, ok := ExtractJSON(`prefix [{"a":"]"}] suffix {"b":2}`)
	require.True(t, ok)
	require.Equal(t, `[{"a":"]"}]`, got)

	_, ok = ExtractJSON("nothing")
	require.False(t, ok)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	require.Equal(t, Strict, m)

	m, err = ParseMode(" Lenient ")
	require.NoError(t, err)
	require.Equal(t, Lenient, m)

	_, err = ParseMode("loose")
	require.Error(t, err)
}
