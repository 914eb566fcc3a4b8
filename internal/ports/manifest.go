package ports

import "polyglotpkg/internal/types"

// ManifestPort loads the action manifest of a workspace.
type ManifestPort interface {
	// Read returns (nil, nil) when the workspace has no manifest.
	Read(workspace string) (*types.Manifest, error)
}
