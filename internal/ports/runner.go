package ports

import "context"

// CommandRunnerPort runs external tools and waits for them to exit.
type CommandRunnerPort interface {
	// Run returns the combined output. A non-zero exit is reported as a
	// *shared.ExecError.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}
