package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/tailscale/hujson"

	"polyglotpkg/internal/core"
	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/shared"
	"polyglotpkg/internal/types"
)

// maxExtendsDepth bounds tsconfig "extends" chains so that cycles terminate.
const maxExtendsDepth = 16

type TscCompilerAdapter struct {
	Runner ports.CommandRunnerPort
	Logger zerolog.Logger
}

func NewTscCompilerAdapter(runner ports.CommandRunnerPort, logger zerolog.Logger) TscCompilerAdapter {
	return TscCompilerAdapter{Runner: runner, Logger: logger}
}

type tsconfigFile struct {
	Extends         string `json:"extends"`
	CompilerOptions struct {
		OutDir  *string `json:"outDir"`
		RootDir *string `json:"rootDir"`
		BaseURL *string `json:"baseUrl"`
	} `json:"compilerOptions"`
}

func (a TscCompilerAdapter) ReadConfig(path string) (ports.CompilerConfig, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return ports.CompilerConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve compiler config path").
			WithCause(err)
	}
	config := ports.CompilerConfig{Path: absPath}
	if err := mergeTsconfig(&config, absPath, 0); err != nil {
		return ports.CompilerConfig{}, err
	}
	return config, nil
}

// mergeTsconfig applies the options of path onto config. Options already set
// by a descendant config win over the ones inherited through "extends".
func mergeTsconfig(config *ports.CompilerConfig, path string, depth int) error {
	if depth > maxExtendsDepth {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("compiler config extends chain is too deep: " + path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.NewPipelineError(types.ErrMissingCompilerConfig, errbuilder.CodeNotFound, "compiler config not found: "+path, err)
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read compiler config").
			WithCause(err)
	}
	standard, err := hujson.Standardize(data)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse compiler config: " + path).
			WithCause(err)
	}
	var parsed tsconfigFile
	if err := json.Unmarshal(standard, &parsed); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to decode compiler config: " + path).
			WithCause(err)
	}

	dir := filepath.Dir(path)
	resolve := func(value *string, target *string) {
		if value == nil || *target != "" {
			return
		}
		*target = filepath.Join(dir, filepath.FromSlash(*value))
	}
	resolve(parsed.CompilerOptions.OutDir, &config.OutDir)
	resolve(parsed.CompilerOptions.RootDir, &config.RootDir)
	resolve(parsed.CompilerOptions.BaseURL, &config.BaseURL)

	if strings.TrimSpace(parsed.Extends) == "" {
		return nil
	}
	return mergeTsconfig(config, resolveExtends(dir, parsed.Extends), depth+1)
}

// resolveExtends maps an "extends" value to a file. Relative values are
// resolved against the declaring directory, anything else is looked up in
// node_modules.
func resolveExtends(dir string, extends string) string {
	path := filepath.FromSlash(extends)
	switch {
	case filepath.IsAbs(path):
	case strings.HasPrefix(extends, "."):
		path = filepath.Join(dir, path)
	default:
		path = filepath.Join(dir, "node_modules", filepath.FromSlash(extends))
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			path = filepath.Join(path, "tsconfig.json")
		}
	}
	if filepath.Ext(path) != ".json" {
		if _, err := os.Stat(path); err != nil {
			path += ".json"
		}
	}
	return path
}

func (a TscCompilerAdapter) Compile(ctx context.Context, workspace string, config ports.CompilerConfig) ([]types.Diagnostic, error) {
	tsc := "tsc"
	local := filepath.Join(workspace, "node_modules", ".bin", "tsc")
	if _, err := os.Stat(local); err == nil {
		tsc = local
	}
	args := []string{"--project", config.Path, "--pretty", "false"}
	a.Logger.Info().Str("project", config.Path).Msg("compiling")
	output, err := a.Runner.Run(ctx, workspace, tsc, args...)
	diagnostics := core.ParseDiagnostics(output)
	for _, diagnostic := range diagnostics {
		event := a.Logger.Info()
		switch diagnostic.Severity {
		case types.SeverityError:
			event = a.Logger.Error()
		case types.SeverityWarning:
			event = a.Logger.Warn()
		}
		event.Msg(diagnostic.String())
	}
	if err == nil {
		return diagnostics, nil
	}
	// tsc exits non-zero whenever it reports errors; those are returned as
	// diagnostics and judged by the caller.
	exitCode := -1
	var execErr *shared.ExecError
	if errors.As(err, &execErr) {
		exitCode = execErr.ExitCode
	}
	if exitCode >= 0 && len(diagnostics) > 0 {
		return diagnostics, nil
	}
	msg := "compiler failed to run"
	if exitCode >= 0 {
		msg = fmt.Sprintf("compiler exited with code %d", exitCode)
	}
	perr := types.NewPipelineError(types.ErrCompilation, errbuilder.CodeInternal, msg, err)
	perr.Command = shared.CommandLine(tsc, args)
	perr.ExitCode = exitCode
	return diagnostics, perr
}

var _ ports.CompilerPort = TscCompilerAdapter{}
