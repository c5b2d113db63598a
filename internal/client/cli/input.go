package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Test seam, stands in for the terminal in tests.
var readPassword = func(fd int) ([]byte, error) {
	return term.ReadPassword(fd)
}

func GetSimpleText(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprintf(w, "%s: ", prompt)

	text, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// GetPassword reads a line with terminal echo disabled. The caller owns
// the returned bytes and should wipe them when done.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	fmt.Fprintf(w, "%s: ", prompt)

	password, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}

	return password, nil
}
