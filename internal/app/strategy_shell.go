package app

import (
	"context"

	"polyglotpkg/internal/core"
	"polyglotpkg/internal/types"
)

// packageShell has no dependency phase: installing PowerShell modules is
// not supported yet and no dependency events are published.
func (s Service) packageShell(_ context.Context, run *pipelineRun) error {
	if err := s.copySources(run); err != nil {
		return err
	}
	s.Logger.Warn().Str("runtime", string(run.runtime)).Msg("dependency installation is not supported for this runtime, skipping")

	return run.phase(types.PhaseBundle, types.ErrBundleWrite, func() error {
		defaults := core.DefaultPatterns(run.workspace, "*.ps1", run.outDir)
		return s.writeBundle(run, defaults, core.ActionBase(run.manifest, run.workspace, ""), false)
	})
}
