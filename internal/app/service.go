package app

import (
	"github.com/rs/zerolog"

	"polyglotpkg/internal/adapters"
	"polyglotpkg/internal/ports"
)

type Service struct {
	Manifest      ports.ManifestPort
	Workspace     ports.WorkspacePort
	Archive       ports.ArchivePort
	Dependencies  ports.DependencyCachePort
	Compiler      ports.CompilerPort
	TreeWriter    ports.TreeWriterPort
	TreeConverter ports.TreeConverterPort
	Report        ports.ReportPort
	Logger        zerolog.Logger
}

func NewService(logger zerolog.Logger) Service {
	return NewServiceWithRunner(logger, adapters.NewExecRunner(logger))
}

// NewServiceWithRunner wires the filesystem adapters with the given runner
// for the external compiler and installers.
func NewServiceWithRunner(logger zerolog.Logger, runner ports.CommandRunnerPort) Service {
	return Service{
		Manifest:      adapters.NewManifestFileAdapter(),
		Workspace:     adapters.NewWorkspaceAdapter(),
		Archive:       adapters.NewZipArchiveAdapter(logger),
		Dependencies:  adapters.NewDependencyCacheAdapter(runner, logger),
		Compiler:      adapters.NewTscCompilerAdapter(runner, logger),
		TreeWriter:    adapters.NewTreeWriterAdapter(logger),
		TreeConverter: adapters.NewTreeConverterAdapter(logger),
		Report:        adapters.NewReportFileAdapter(),
		Logger:        logger,
	}
}
