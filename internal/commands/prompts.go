package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var errNoPath = errors.New("a file path is required")

// promptPath returns arg, or asks for a path when arg is empty.
func promptPath(arg string) (string, error) {
	if arg != "" {
		return resolveTarget(arg)
	}

	if !stdinIsTerminal() {
		return "", errNoPath
	}

	var path string
	err := huh.NewInput().
		Title("Enter file").
		Value(&path).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errNoPath
			}
			return nil
		}).
		Run()
	if err != nil {
		return "", err
	}

	return resolveTarget(strings.TrimSpace(path))
}

// promptMessage asks for the plaintext of a new file. When stdin is not a
// terminal the message is read from it instead.
func promptMessage() (string, error) {
	if !stdinIsTerminal() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read message from stdin: %w", err)
		}
		return trimMessage(data), nil
	}

	var msg string
	err := huh.NewText().
		Title("Enter message").
		Value(&msg).
		Run()
	if err != nil {
		return "", err
	}

	return trimMessage([]byte(msg)), nil
}

// trimMessage drops one trailing line ending, Create adds it back.
func trimMessage(data []byte) string {
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	return string(data)
}

// readPassphrase prompts without echo. Stdin is used when it is a terminal,
// otherwise the controlling terminal is opened directly so stdin stays free
// for piped input.
func readPassphrase(prompt string) ([]byte, error) {
	if stdinIsTerminal() {
		return readPasswordFrom(int(os.Stdin.Fd()), prompt)
	}

	ttyPath := "/dev/tty"
	if runtime.GOOS == "windows" {
		ttyPath = "CON"
	}

	tty, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal and %s is unavailable: %w", ttyPath, err)
	}
	defer func() { _ = tty.Close() }()

	if !term.IsTerminal(int(tty.Fd())) {
		return nil, fmt.Errorf("cannot read passphrase: %s is not a terminal", ttyPath)
	}

	return readPasswordFrom(int(tty.Fd()), prompt)
}

func readPasswordFrom(fd int, prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(passphrase) == 0 {
		return nil, errors.New("passphrase must not be empty")
	}

	return passphrase, nil
}

// readNewPassphrase asks twice and requires both answers to match.
func readNewPassphrase() ([]byte, error) {
	first, err := readPassphrase("Passphrase: ")
	if err != nil {
		return nil, err
	}

	second, err := readPassphrase("Repeat passphrase: ")
	if err != nil {
		clear(first)
		return nil, err
	}
	defer clear(second)

	if !bytes.Equal(first, second) {
		clear(first)
		return nil, errors.New("passphrases do not match")
	}

	return first, nil
}
