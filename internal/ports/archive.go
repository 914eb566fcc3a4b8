package ports

import "polyglotpkg/internal/types"

// ArchivePort writes bundle archives.
type ArchivePort interface {
	WriteArchive(filesets []types.BundleFileset, destination string) error
}
