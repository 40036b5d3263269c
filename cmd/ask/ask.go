package ask

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	chatpkg "github.com/blastlab/testgen/internal/chat"
	"github.com/blastlab/testgen/internal/client"
	cfgpkg "github.com/blastlab/testgen/internal/config"
	"github.com/blastlab/testgen/internal/exitcode"
	"github.com/blastlab/testgen/internal/testcase"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagProxyURL string
	flagOutput   string
)

var AskCmd = &cobra.Command{
	Use:   "ask <requirement>",
	Short: "Generate test cases for one requirement and print them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cfgpkg.Load()
		if err != nil {
			return err
		}
		proxy := cfg.Client.ProxyURL
		if flagProxyURL != "" {
			proxy = flagProxyURL
		}
		s := &chatpkg.Sender{Conv: chatpkg.NewConversation(), Gen: client.New(proxy, nil), Log: log.Logger}
		entry, err := s.Send(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), chatpkg.FailureMessage)
			log.Debug().Err(err).Msg("ask failed")
			return exitcode.New(1)
		}
		return render(cmd.OutOrStdout(), outputMode(flagOutput), entry.TestCases)
	},
}

// outputMode resolves "auto" to a table on terminals and JSON otherwise.
func outputMode(flag string) string {
	if flag != "auto" {
		return flag
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "table"
	}
	return "json"
}

func render(w io.Writer, mode string, cases []testcase.TestCase) error {
	switch mode {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(testcase.Result{TestCases: cases})
	case "csv":
		return testcase.WriteCSV(w, cases)
	case "table":
		tw := tablewriter.NewWriter(w)
		tw.SetHeader([]string{"ID", "Title", "Steps", "Expected Result", "Priority"})
		tw.SetAutoWrapText(false)
		tw.SetRowLine(true)
		for _, tc := range cases {
			tw.Append([]string{tc.ID, tc.Title, testcase.NumberedSteps(tc.Steps), tc.ExpectedResult, string(tc.Priority)})
		}
		tw.Render()
		return nil
	default:
		return fmt.Errorf("unknown output %q (want table, json or csv)", mode)
	}
}

func init() {
	AskCmd.Flags().StringVar(&flagProxyURL, "proxy", "", "Proxy base URL (defaults to config client.proxy_url)")
	AskCmd.Flags().StringVarP(&flagOutput, "output", "o", "auto", "Output format: auto, table, json or csv")
}
