package core

import (
	"bufio"
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"polyglotpkg/internal/types"
)

var (
	locatedDiagnostic = regexp.MustCompile(`^(.+)\((\d+),(\d+)\): (error|warning|message) (TS\d+): (.*)$`)
	globalDiagnostic  = regexp.MustCompile(`^(error|warning|message) (TS\d+): (.*)$`)
)

// ParseDiagnostics extracts compiler diagnostics from non-pretty tsc output.
// Continuation lines are appended to the message of the preceding
// diagnostic.
func ParseDiagnostics(output []byte) []types.Diagnostic {
	var result []types.Diagnostic
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := locatedDiagnostic.FindStringSubmatch(line); m != nil {
			lineNo, _ := strconv.Atoi(m[2])
			column, _ := strconv.Atoi(m[3])
			result = append(result, types.Diagnostic{
				Severity: types.Severity(m[4]),
				Code:     m[5],
				File:     m[1],
				Line:     lineNo,
				Column:   column,
				Message:  m[6],
			})
			continue
		}
		if m := globalDiagnostic.FindStringSubmatch(line); m != nil {
			result = append(result, types.Diagnostic{
				Severity: types.Severity(m[1]),
				Code:     m[2],
				Message:  m[3],
			})
			continue
		}
		if len(result) > 0 && (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) {
			last := &result[len(result)-1]
			last.Message += "\n" + strings.TrimSpace(line)
		}
	}
	return result
}

// HasErrors reports whether any diagnostic is of error severity.
func HasErrors(diagnostics []types.Diagnostic) bool {
	for _, diagnostic := range diagnostics {
		if diagnostic.Severity == types.SeverityError {
			return true
		}
	}
	return false
}
