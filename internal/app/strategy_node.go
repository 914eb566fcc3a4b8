package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"polyglotpkg/internal/core"
	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

const compilerConfigFile = "tsconfig.json"

// dependencyBookkeeping lists the files of the dependency directory that
// belong to the cache and the installer, not to the bundle.
var dependencyBookkeeping = []string{"deps.sha256", types.ManifestFileName, "package-lock.json"}

// installManifest is the manifest copy the Node installer runs against.
type installManifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

func (s Service) packageNode(ctx context.Context, run *pipelineRun) error {
	configPath := filepath.Join(run.workspace, compilerConfigFile)
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.NewPipelineError(types.ErrMissingCompilerConfig, errbuilder.CodeNotFound,
				"could not find "+compilerConfigFile+" in the project root", nil)
		}
		return types.NewPipelineError(types.ErrMissingCompilerConfig, errbuilder.CodeInternal,
			"cannot access "+compilerConfigFile, err)
	}

	var config ports.CompilerConfig
	err := run.phase(types.PhaseCompile, types.ErrCompilation, func() error {
		var err error
		config, err = s.Compiler.ReadConfig(configPath)
		if err != nil {
			return err
		}
		diagnostics, err := s.Compiler.Compile(ctx, run.workspace, config)
		if err != nil {
			return err
		}
		if core.HasErrors(diagnostics) {
			perr := types.NewPipelineError(types.ErrCompilation, errbuilder.CodeFailedPrecondition, "found compilation errors", nil)
			perr.Diagnostics = diagnostics
			return perr
		}
		s.Logger.Info().Int("diagnostics", len(diagnostics)).Msg("compilation complete")
		return nil
	})
	if err != nil {
		return err
	}

	err = run.phase(types.PhaseDependencies, types.ErrDependencyInstall, func() error {
		declaration, err := json.Marshal(run.manifest.Dependencies)
		if err != nil {
			return err
		}
		_, err = s.Dependencies.EnsureInstalled(ctx, types.InstallRequest{
			Declaration: declaration,
			WorkDir:     run.depsDir,
			Prepare: func(workDir string) error {
				data, err := json.MarshalIndent(installManifest{
					Name:         run.manifest.Name,
					Version:      run.manifest.Version,
					Dependencies: run.manifest.Dependencies,
				}, "", "  ")
				if err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(workDir, types.ManifestFileName), data, 0o644)
			},
			Command: "npm",
			Args:    []string{"install", "--production"},
		})
		return err
	})
	if err != nil {
		return err
	}

	return run.phase(types.PhaseBundle, types.ErrBundleWrite, func() error {
		defaults := core.DefaultPatterns(run.workspace, "*.js", config.OutDir, config.RootDir)
		baseDir := core.ActionBase(run.manifest, run.workspace, config.BaseURL)
		return s.writeBundle(run, defaults, baseDir, true)
	})
}

// writeBundle globs the project files and, when withDependencies is set,
// adds the installed dependency tree as a second fileset. An allow-list in
// the manifest decides the whole content, so dependencies are left out then.
func (s Service) writeBundle(run *pipelineRun, defaults []string, baseDir string, withDependencies bool) error {
	if withDependencies && len(run.manifest.BundleAllowList()) > 0 {
		s.Logger.Debug().Msg("manifest declares a file allow-list, dependencies are not bundled")
		withDependencies = false
	}
	// The manifest sits at the workspace root, above a base directory below it.
	if rel, err := filepath.Rel(baseDir, run.workspace); err == nil && (rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		s.Logger.Warn().
			Str("base", baseDir).
			Str("manifest_entry", filepath.ToSlash(filepath.Join(rel, types.ManifestFileName))).
			Msg("bundle base is below the workspace root, the manifest entry climbs out of the archive root")
	}
	patterns := core.BundlePatterns(run.manifest, defaults)
	files, err := s.Workspace.Glob(run.workspace, patterns)
	if err != nil {
		return err
	}
	filesets := []types.BundleFileset{{Files: files, BaseDir: baseDir}}
	count := len(files)
	if withDependencies {
		deps, err := s.Workspace.ListFiles(run.depsDir, dependencyBookkeeping)
		if err != nil {
			return err
		}
		filesets = append(filesets, types.BundleFileset{Files: deps, BaseDir: run.depsDir})
		count += len(deps)
	}
	s.Logger.Info().
		Int("files", count).
		Str("base", baseDir).
		Str("bundle", run.bundlePath).
		Msg("packaging files into bundle")
	return s.Archive.WriteArchive(filesets, run.bundlePath)
}
