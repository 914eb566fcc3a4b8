package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/shared"
	"polyglotpkg/internal/types"
)

// DependencyHashFile is the name of the persisted declaration hash inside the
// dependency work directory.
const DependencyHashFile = "deps.sha256"

// DependencyCacheAdapter installs dependencies at most once per distinct
// declaration. The hash file is read and written without locking, so two
// runs against the same work directory may race.
type DependencyCacheAdapter struct {
	Runner ports.CommandRunnerPort
	Logger zerolog.Logger
}

func NewDependencyCacheAdapter(runner ports.CommandRunnerPort, logger zerolog.Logger) DependencyCacheAdapter {
	return DependencyCacheAdapter{Runner: runner, Logger: logger}
}

func (a DependencyCacheAdapter) EnsureInstalled(ctx context.Context, req types.InstallRequest) (bool, error) {
	if strings.TrimSpace(req.WorkDir) == "" {
		return false, dependencyError(errbuilder.CodeInvalidArgument, "dependency work directory is empty", nil)
	}
	if strings.TrimSpace(req.Command) == "" {
		return false, dependencyError(errbuilder.CodeInvalidArgument, "dependency install command is empty", nil)
	}
	if err := os.MkdirAll(req.WorkDir, 0o755); err != nil {
		return false, dependencyError(errbuilder.CodeInternal, "failed to create dependency directory", err)
	}

	sum := sha256.Sum256(req.Declaration)
	digest := hex.EncodeToString(sum[:])
	hashPath := filepath.Join(req.WorkDir, DependencyHashFile)
	previous, err := os.ReadFile(hashPath)
	switch {
	case err == nil && strings.TrimSpace(string(previous)) == digest:
		a.Logger.Info().Str("hash", digest).Msg("no change in dependencies, skipping installation")
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, dependencyError(errbuilder.CodeInternal, "failed to read dependency hash", err)
	}

	a.Logger.Info().Str("hash", digest).Msg("dependencies changed, installing")
	if req.Prepare != nil {
		if err := req.Prepare(req.WorkDir); err != nil {
			return false, dependencyError(errbuilder.CodeInternal, "failed to prepare dependency directory", err)
		}
	}

	dir := req.Dir
	if dir == "" {
		dir = req.WorkDir
	}
	line := shared.CommandLine(req.Command, req.Args)
	output, err := a.Runner.Run(ctx, dir, req.Command, req.Args...)
	if err != nil {
		exitCode := -1
		var execErr *shared.ExecError
		if errors.As(err, &execErr) {
			exitCode = execErr.ExitCode
		}
		code := errbuilder.CodeInternal
		if exitCode < 0 {
			code = errbuilder.CodeNotFound
		}
		perr := types.NewPipelineError(types.ErrDependencyInstall, code, "dependency installation failed: "+line, err)
		perr.Command = line
		perr.ExitCode = exitCode
		return false, perr
	}
	if len(output) > 0 {
		a.Logger.Debug().Str("command", line).Msg(strings.TrimSpace(string(output)))
	}

	if err := os.WriteFile(hashPath, []byte(digest), 0o644); err != nil {
		return true, dependencyError(errbuilder.CodeInternal, "failed to persist dependency hash", err)
	}
	return true, nil
}

func dependencyError(code errbuilder.ErrCode, msg string, cause error) error {
	return types.NewPipelineError(types.ErrDependencyInstall, code, msg, cause)
}

var _ ports.DependencyCachePort = DependencyCacheAdapter{}
