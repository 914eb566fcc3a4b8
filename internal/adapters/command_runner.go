package adapters

import (
	"context"
	"errors"
	"os/exec"

	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/shared"
)

type ExecRunner struct {
	Logger zerolog.Logger
}

func NewExecRunner(logger zerolog.Logger) ExecRunner {
	return ExecRunner{Logger: logger}
}

func (r ExecRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	line := shared.CommandLine(name, args)
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, &shared.ExecError{Command: line, ExitCode: -1, Err: err}
	}
	r.Logger.Debug().Str("dir", dir).Str("command", line).Msg("running")
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return output, &shared.ExecError{
			Command:  line,
			ExitCode: exitCode,
			Output:   output,
			Err:      shared.CommandError(output, err),
		}
	}
	return output, nil
}

var _ ports.CommandRunnerPort = ExecRunner{}
