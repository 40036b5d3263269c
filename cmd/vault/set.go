package vaultcmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Set or update a secret value in the vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(args[0])
		if name == "" {
			return errors.New("name must not be empty")
		}
		st, backend, err := openStore()
		if err != nil {
			return err
		}
		secret, err := promptSecret(cmd, fmt.Sprintf("Enter secret for %q: ", name))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := st.Set(ctx, name, secret); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "secret %q stored in backend %q\n", name, backend)
		return nil
	},
}

func promptSecret(cmd *cobra.Command, prompt string) ([]byte, error) {
	errOut := cmd.ErrOrStderr()
	// If stdin is a terminal, use no-echo password input.
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(errOut, prompt)
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return nil, err
		}
		return []byte(strings.TrimRight(string(b), "\r\n")), nil
	}
	fmt.Fprintln(errOut, "warning: reading secret from stdin; input will not be masked")
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
