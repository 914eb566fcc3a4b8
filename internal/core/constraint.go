package core

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"polyglotpkg/internal/shared"
	"polyglotpkg/internal/types"
)

// opTokens is the ordered list of operators tried while splitting a
// requirement. Longer tokens must precede shorter ones (">=" before ">").
var opTokens = []types.ConstraintOp{
	types.ConstraintOpArbitrEq,
	types.ConstraintOpGte,
	types.ConstraintOpLte,
	types.ConstraintOpCompat,
	types.ConstraintOpNe,
	types.ConstraintOpEq,
	types.ConstraintOpGt,
	types.ConstraintOpLt,
}

// ParseRequirement splits a "name>=version" requirement. Extras and
// environment markers are dropped and the name is normalized. A line
// without operator yields ConstraintOpNone.
func ParseRequirement(raw string) (types.Requirement, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, ";"); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	if raw == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("empty requirement")
	}
	first := len(raw)
	var op types.ConstraintOp
	for _, token := range opTokens {
		if i := strings.Index(raw, string(token)); i >= 0 && i < first {
			first = i
			op = token
		}
	}
	name := strings.TrimSpace(raw[:first])
	if i := strings.Index(name, "["); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return types.Requirement{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirement: %s", raw))
	}
	requirement := types.Requirement{Name: shared.NormalizePipName(name), Op: op}
	if op != types.ConstraintOpNone {
		requirement.Specifier = strings.TrimSpace(raw[first:])
		if strings.TrimSpace(strings.TrimPrefix(requirement.Specifier, string(op))) == "" {
			return types.Requirement{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid requirement: %s", raw))
		}
	}
	return requirement, nil
}

// ParseRequirements reads a requirements file. It never fails: lines the
// installer may reject are returned as warnings, and pip stays the judge.
// Option lines, URL requirements and comments are skipped.
func ParseRequirements(data []byte) ([]types.Requirement, []string) {
	var requirements []types.Requirement
	var warnings []string
	seen := map[string]int{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") || strings.Contains(line, "://") || strings.Contains(line, " @ ") {
			continue
		}
		requirement, err := ParseRequirement(line)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: %v", lineNo, err))
			continue
		}
		requirement.Line = lineNo
		if requirement.Specifier != "" {
			if _, err := pep440.NewSpecifiers(requirement.Specifier); err != nil {
				warnings = append(warnings, fmt.Sprintf("line %d: %s: invalid version specifier %q", lineNo, requirement.Name, requirement.Specifier))
			}
		}
		if previous, ok := seen[requirement.Name]; ok {
			warnings = append(warnings, fmt.Sprintf("line %d: %s already required on line %d", lineNo, requirement.Name, previous))
		}
		seen[requirement.Name] = lineNo
		requirements = append(requirements, requirement)
	}
	return requirements, warnings
}
