// Package shared provides common utility functions used across multiple
// packages in the polyglotpkg codebase.
package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// NormalizePipName lowercases a Python package name and replaces
// underscores and dots with hyphens, following PEP 503 normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(lower)
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// ExecError reports an external command that could not be started or that
// exited with a non-zero status. ExitCode is -1 when the process never ran.
type ExecError struct {
	Command  string
	ExitCode int
	Output   []byte
	Err      error
}

func (e *ExecError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("cannot run %q: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("exit code for %q: %d", e.Command, e.ExitCode)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

var whitespace = regexp.MustCompile(`\s`)

// QuoteArg double-quotes an argument containing whitespace, for log and
// error messages only.
func QuoteArg(value string) string {
	if whitespace.MatchString(value) {
		return `"` + value + `"`
	}
	return value
}

// CommandLine renders a command and its arguments for humans.
func CommandLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, QuoteArg(name))
	for _, arg := range args {
		parts = append(parts, QuoteArg(arg))
	}
	return strings.Join(parts, " ")
}
