package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorKind classifies packaging failures.
type ErrorKind string

const (
	ErrManifestNotFound      ErrorKind = "manifest_not_found"
	ErrManifestParse         ErrorKind = "manifest_parse"
	ErrUnsupportedAction     ErrorKind = "unsupported_action"
	ErrUnsupportedRuntime    ErrorKind = "unsupported_runtime"
	ErrMissingCompilerConfig ErrorKind = "missing_compiler_config"
	ErrCompilation           ErrorKind = "compilation"
	ErrDependencyInstall     ErrorKind = "dependency_install"
	ErrBundleWrite           ErrorKind = "bundle_write"
	ErrTreeSynthesis         ErrorKind = "tree_synthesis"
)

// Severity of a compiler diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityMessage Severity = "message"
)

// Diagnostic is one compiler report. File, Line and Column are zero when the
// compiler did not attach a location.
type Diagnostic struct {
	Severity Severity
	Code     string
	File     string
	Line     int
	Column   int
	Message  string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&b, "(%d,%d)", d.Line, d.Column)
		}
		b.WriteString(": ")
	}
	b.WriteString(string(d.Severity))
	if d.Code != "" {
		b.WriteString(" ")
		b.WriteString(d.Code)
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// PipelineError is the error returned by every packaging phase. Each one
// also carries an errbuilder error with a status code, reachable through
// errors.As.
type PipelineError struct {
	Kind        ErrorKind
	Msg         string
	Diagnostics []Diagnostic
	Command     string
	ExitCode    int
	Cause       error

	coded error
}

// NewPipelineError builds a PipelineError of the given kind and code.
func NewPipelineError(kind ErrorKind, code errbuilder.ErrCode, msg string, cause error) *PipelineError {
	builder := errbuilder.New().
		WithCode(code).
		WithMsg(msg)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return &PipelineError{
		Kind:  kind,
		Msg:   msg,
		Cause: cause,
		coded: builder,
	}
}

func (e *PipelineError) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
}

func (e *PipelineError) Unwrap() []error {
	var errs []error
	if e.coded != nil {
		errs = append(errs, e.coded)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// KindOf returns the kind of the first PipelineError in the chain, or an
// empty kind.
func KindOf(err error) ErrorKind {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

// IsKind reports whether err wraps a PipelineError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
