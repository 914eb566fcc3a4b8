package ports

import (
	"context"

	"polyglotpkg/internal/types"
)

// DependencyCachePort installs external dependencies only when their
// declaration changed since the last successful install in the same work
// directory. Implementations are not safe for concurrent use against one
// work directory.
type DependencyCachePort interface {
	// EnsureInstalled reports whether the install command ran.
	EnsureInstalled(ctx context.Context, req types.InstallRequest) (bool, error)
}
