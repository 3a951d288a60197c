package setup

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

func promptYesNo(in *bufio.Reader, out io.Writer, msg string) (bool, error) {
	_, _ = fmt.Fprint(out, msg)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	s := strings.TrimSpace(strings.ToLower(line))
	return s == "y" || s == "yes", nil
}
