package tools

import (
	"fmt"

	"github.com/blastlab/testgen/internal/exitcode"
	"github.com/blastlab/testgen/internal/testcase"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <json>",
	Short: "Check that a JSON document has the test-case shape",
	Long: "Prints VALID_JSON_SCHEMA for a document with a test_cases array,\n" +
		"VALID_JSON_OBJECT for a single test case with id and steps,\n" +
		"INVALID_SCHEMA or JSON_PARSE_ERROR otherwise (exit status 1).",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st := testcase.Verify(args[0])
		if st.OK() {
			fmt.Fprintln(cmd.OutOrStdout(), st)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), st)
		return exitcode.New(1)
	},
}
