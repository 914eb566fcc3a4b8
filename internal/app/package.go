package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"polyglotpkg/internal/core"
	"polyglotpkg/internal/types"
)

const dependencyDirName = "tmp"

// ResolveAction reads the workspace manifest and classifies it.
func (s Service) ResolveAction(workspace string, override types.ActionType) (*types.Manifest, types.ActionType, types.ActionRuntime, error) {
	manifest, err := s.Manifest.Read(workspace)
	if err != nil {
		return nil, types.ActionTypeUnknown, types.ActionRuntimeUnknown, err
	}
	if manifest == nil {
		return nil, types.ActionTypeUnknown, types.ActionRuntimeUnknown, types.NewPipelineError(
			types.ErrManifestNotFound,
			errbuilder.CodeNotFound,
			fmt.Sprintf("no %s found in %s", types.ManifestFileName, workspace),
			nil,
		)
	}
	return manifest, core.ResolveActionType(manifest, override), core.ResolveActionRuntime(manifest, override), nil
}

// Package compiles, installs dependencies and bundles the workspace, then
// writes the platform tree for vro actions unless SkipTree is set. The
// context is only checked before the run starts.
func (s Service) Package(ctx context.Context, req PackageRequest) (PackageResult, error) {
	if err := ctx.Err(); err != nil {
		return PackageResult{}, err
	}
	run, err := s.newRun(req)
	if err != nil {
		return PackageResult{}, err
	}
	result, err := s.packageRun(ctx, req, run)
	result.Events = run.events
	if reportPath := strings.TrimSpace(req.ReportPath); reportPath != "" && s.Report != nil {
		report := types.RunReport{
			ActionType: run.actionType,
			Runtime:    run.runtime,
			Workspace:  run.workspace,
			Bundle:     run.bundlePath,
			TreeDir:    result.TreeDir,
			Events:     run.events,
		}
		if reportErr := s.Report.WriteReport(reportPath, report); reportErr != nil {
			if err == nil {
				return result, reportErr
			}
			s.Logger.Warn().Err(reportErr).Msg("failed to write run report")
		}
	}
	return result, err
}

func (s Service) newRun(req PackageRequest) (*pipelineRun, error) {
	workspace, err := absPath(req.Workspace, ".")
	if err != nil {
		return nil, err
	}
	bundlePath, err := absPath(req.BundlePath, filepath.Join(workspace, "dist", "bundle.zip"))
	if err != nil {
		return nil, err
	}
	outDir, err := absPath(req.OutDir, filepath.Join(workspace, "out"))
	if err != nil {
		return nil, err
	}
	return &pipelineRun{
		workspace:  workspace,
		bundlePath: bundlePath,
		outDir:     outDir,
		depsDir:    filepath.Join(workspace, dependencyDirName),
		sink:       req.Events,
		logger:     s.Logger,
	}, nil
}

func (s Service) packageRun(ctx context.Context, req PackageRequest, run *pipelineRun) (PackageResult, error) {
	manifest, actionType, runtime, err := s.ResolveAction(run.workspace, req.PlatformOverride)
	if err != nil {
		return PackageResult{}, err
	}
	run.manifest = manifest
	run.actionType = actionType
	run.runtime = runtime
	result := PackageResult{ActionType: actionType, Runtime: runtime, BundlePath: run.bundlePath}
	s.Logger.Info().
		Str("workspace", run.workspace).
		Str("type", string(actionType)).
		Str("runtime", string(runtime)).
		Msg("packaging action")

	if actionType == types.ActionTypeUnknown {
		return result, types.NewPipelineError(types.ErrUnsupportedAction, errbuilder.CodeInvalidArgument,
			"unsupported action type: the manifest declares neither a vro nor an abx block for the requested platform", nil)
	}
	assert.NotEmpty(ctx, run.workspace, "workspace must be resolved")

	switch runtime.Family() {
	case types.RuntimeFamilyNode:
		err = s.packageNode(ctx, run)
	case types.RuntimeFamilyPython:
		err = s.packagePython(ctx, run)
	case types.RuntimeFamilyShell:
		err = s.packageShell(ctx, run)
	case types.RuntimeFamilyUnknown:
		err = types.NewPipelineError(types.ErrUnsupportedRuntime, errbuilder.CodeInvalidArgument,
			fmt.Sprintf("unsupported action runtime %q", runtime), nil)
	default:
		err = types.NewPipelineError(types.ErrUnsupportedRuntime, errbuilder.CodeInvalidArgument,
			fmt.Sprintf("no strategy for runtime family %q", runtime.Family()), nil)
	}
	if err != nil {
		return result, err
	}
	s.Logger.Info().Str("bundle", run.bundlePath).Msg("bundle created")

	if req.SkipTree || actionType != types.ActionTypeVRO {
		return result, nil
	}
	treeDir, err := absPath(req.TreeDir, filepath.Join(run.workspace, "dist", "vro"))
	if err != nil {
		return result, err
	}
	tree, err := core.BuildTreeDescriptor(manifest, runtime)
	if err != nil {
		return result, err
	}
	if err := s.TreeWriter.WriteTree(treeDir, tree, run.bundlePath); err != nil {
		return result, withKind(types.ErrTreeSynthesis, "tree synthesis failed", err)
	}
	result.TreeDir = treeDir
	s.Logger.Info().Str("tree", treeDir).Str("id", tree.ID).Msg("vRO tree created")
	return result, nil
}

func absPath(value string, fallback string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid path: " + value).
			WithCause(err)
	}
	return abs, nil
}
