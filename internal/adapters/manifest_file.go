package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

// Read loads the manifest at the workspace root. Manifests of installed
// dependencies live below node_modules or tmp and are never considered.
func (a ManifestFileAdapter) Read(workspace string) (*types.Manifest, error) {
	path := filepath.Join(workspace, types.ManifestFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, types.NewPipelineError(types.ErrManifestParse, errbuilder.CodeInternal,
			"failed to read "+types.ManifestFileName, err)
	}
	var manifest types.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, types.NewPipelineError(types.ErrManifestParse, errbuilder.CodeInvalidArgument,
			"failed to parse "+path, err)
	}
	return &manifest, nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
