package ports

import (
	"context"

	"polyglotpkg/internal/types"
)

// CompilerConfig is the subset of the compiler configuration the packager
// needs. Directories are absolute; empty means unset.
type CompilerConfig struct {
	Path    string
	OutDir  string
	RootDir string
	BaseURL string
}

// CompilerPort drives the Node-like compiler front end.
type CompilerPort interface {
	ReadConfig(path string) (CompilerConfig, error)
	// Compile returns every diagnostic reported by the compiler. The error is
	// only set when the compiler could not run at all.
	Compile(ctx context.Context, workspace string, config CompilerConfig) ([]types.Diagnostic, error)
}
