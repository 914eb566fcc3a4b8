package ports

import "polyglotpkg/internal/types"

// TreeWriterPort writes the platform package tree of one action.
type TreeWriterPort interface {
	WriteTree(treeDir string, tree types.TreeDescriptor, bundlePath string) error
}

// TreeConverterPort converts between the tree layout and the flat package
// layout.
type TreeConverterPort interface {
	Flatten(treeDir string, packagePath string) error
	Expand(packagePath string, treeDir string) error
}
