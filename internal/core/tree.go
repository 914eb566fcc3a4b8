package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"polyglotpkg/internal/types"
)

const (
	DefaultVersion       = "1.0.0"
	DefaultMemoryLimitMb = 64
	DefaultTimeoutSec    = 180
)

// BuildTreeDescriptor computes the platform tree contents of a vro action.
func BuildTreeDescriptor(manifest *types.Manifest, runtime types.ActionRuntime) (types.TreeDescriptor, error) {
	if manifest == nil || manifest.Vro == nil {
		return types.TreeDescriptor{}, types.NewPipelineError(types.ErrTreeSynthesis, errbuilder.CodeInvalidArgument, "manifest has no vro block", nil)
	}
	module := strings.TrimSpace(manifest.Vro.Module)
	if module == "" {
		return types.TreeDescriptor{}, types.NewPipelineError(types.ErrTreeSynthesis, errbuilder.CodeInvalidArgument, "manifest vro.module is required for tree synthesis", nil)
	}
	action := strings.TrimSpace(manifest.Platform.Action)
	if action == "" {
		return types.TreeDescriptor{}, types.NewPipelineError(types.ErrTreeSynthesis, errbuilder.CodeInvalidArgument, "manifest platform.action is required for tree synthesis", nil)
	}

	version := strings.TrimSpace(manifest.Version)
	if version == "" {
		version = DefaultVersion
	}
	memoryMb := manifest.Platform.MemoryLimitMb
	if memoryMb <= 0 {
		memoryMb = DefaultMemoryLimitMb
	}
	timeout := manifest.Platform.TimeoutSec
	if timeout <= 0 {
		timeout = DefaultTimeoutSec
	}
	return types.TreeDescriptor{
		ID:               DeriveID(manifest.Vro.ID, module, action),
		GroupID:          module,
		ArtifactID:       action,
		Version:          version,
		ActionVersion:    ReleaseVersion(version),
		Description:      manifest.Description,
		Runtime:          runtime,
		EntryPoint:       manifest.Platform.Entrypoint,
		ResultType:       manifest.Vro.OutputType,
		MemoryLimitBytes: int64(memoryMb) * 1024 * 1024,
		TimeoutSec:       timeout,
		Inputs:           manifest.Vro.Inputs,
		Tags:             manifest.Platform.Tags,
		CategoryPath:     module,
	}, nil
}

// ReleaseVersion drops any pre-release or build suffix: "1.2.0-SNAPSHOT"
// becomes "1.2.0".
func ReleaseVersion(version string) string {
	if i := strings.IndexAny(version, "-+"); i > 0 {
		return version[:i]
	}
	return version
}
