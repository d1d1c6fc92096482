package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/cryptoblog/blogctl/pkg/output"
)

// stdin and readPassword are seams for tests; commands never touch
// os.Stdin directly.
var (
	stdin io.Reader = os.Stdin

	readPassword = func() ([]byte, error) {
		return term.ReadPassword(int(os.Stdin.Fd()))
	}
)

func promptLine(label string) (string, error) {
	fmt.Fprintf(output.Stdout, "%s: ", label)
	reader := bufio.NewReader(stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Fprintf(output.Stdout, "%s: ", label)
	b, err := readPassword()
	fmt.Fprintln(output.Stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// promptNewPassword asks twice and verifies the two entries match before
// anything is sent to the backend.
func promptNewPassword() (string, error) {
	pass, err := promptPassword("New password")
	if err != nil {
		return "", err
	}
	if len(pass) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	confirm, err := promptPassword("Confirm password")
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}
