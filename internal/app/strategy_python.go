package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"polyglotpkg/internal/core"
	"polyglotpkg/internal/types"
)

const requirementsFile = "requirements.txt"

func (s Service) packagePython(ctx context.Context, run *pipelineRun) error {
	if err := s.copySources(run); err != nil {
		return err
	}

	hasRequirements := true
	err := run.phase(types.PhaseDependencies, types.ErrDependencyInstall, func() error {
		requirementsPath := filepath.Join(run.workspace, requirementsFile)
		declaration, err := os.ReadFile(requirementsPath)
		if errors.Is(err, os.ErrNotExist) {
			s.Logger.Info().Msg("no " + requirementsFile + " found, skipping dependency installation")
			hasRequirements = false
			return nil
		}
		if err != nil {
			return err
		}
		requirements, warnings := core.ParseRequirements(declaration)
		for _, warning := range warnings {
			s.Logger.Warn().Str("file", requirementsPath).Msg(warning)
		}
		s.Logger.Debug().Int("requirements", len(requirements)).Str("file", requirementsPath).Msg("requirements parsed")
		_, err = s.Dependencies.EnsureInstalled(ctx, types.InstallRequest{
			Declaration: declaration,
			WorkDir:     run.depsDir,
			Command:     "pip3",
			Args:        []string{"install", "-r", requirementsPath, "--target", run.depsDir, "--upgrade"},
			Dir:         run.workspace,
		})
		return err
	})
	if err != nil {
		return err
	}

	return run.phase(types.PhaseBundle, types.ErrBundleWrite, func() error {
		defaults := core.DefaultPatterns(run.workspace, "*.py", run.outDir)
		// A tmp directory left by an earlier run is stale without requirements.
		return s.writeBundle(run, defaults, core.ActionBase(run.manifest, run.workspace, ""), hasRequirements)
	})
}

// copySources is the compile phase of the script runtimes: the src tree is
// copied unchanged into the output directory.
func (s Service) copySources(run *pipelineRun) error {
	return run.phase(types.PhaseCompile, types.ErrCompilation, func() error {
		s.Logger.Info().Str("out", run.outDir).Msg("compiling project")
		return s.Workspace.CopyTree(filepath.Join(run.workspace, "src"), run.outDir)
	})
}
