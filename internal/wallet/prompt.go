package wallet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/term"
)

const minPasswordLen = 8

// PromptPassword reads the keyring password from the terminal without echo.
func PromptPassword(prompt string) ([]byte, error) {
	_, _ = fmt.Fprint(os.Stderr, prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	_, _ = fmt.Fprintln(os.Stderr)
	if err != nil {
		zero(pw)
		return nil, fmt.Errorf("password input failed: %w", err)
	}
	if err := checkPassword(pw); err != nil {
		zero(pw)
		return nil, err
	}
	return pw, nil
}

func checkPassword(pw []byte) error {
	if len(pw) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLen)
	}
	for _, b := range pw {
		if b < 0x21 || b > 0x7e {
			return fmt.Errorf("password contains invalid characters (use printable ASCII without spaces)")
		}
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// TerminalApproval asks on out and reads a y/n answer from in. Anything but yes declines.
func TerminalApproval(in io.Reader, out io.Writer) ApprovalFunc {
	reader := bufio.NewReader(in)
	return func(ctx context.Context, accounts []common.Address) (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, "=== Account access request ===")
		for _, a := range accounts {
			_, _ = fmt.Fprintf(out, "  %s\n", a.Hex())
		}
		_, _ = fmt.Fprint(out, "Connect this account? [y/N]: ")

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return false, nil
			}
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
