package ports

// WorkspacePort performs the filesystem work of the strategies.
type WorkspacePort interface {
	// Glob expands globby-style patterns relative to root. Patterns starting
	// with "!" exclude earlier matches. Only files are returned, as
	// absolute paths in a stable order.
	Glob(root string, patterns []string) ([]string, error)

	// ListFiles returns every file below dir, skipping the given names at
	// the top level.
	ListFiles(dir string, skip []string) ([]string, error)

	// CopyTree copies the directory src into dst, merging with existing
	// content.
	CopyTree(src string, dst string) error
}
