package core

import (
	"path/filepath"
	"strings"

	"polyglotpkg/internal/types"
)

// BundlePatterns returns the glob patterns selecting the project files of a
// bundle. The manifest is always included. A non-empty allow-list replaces
// the defaults entirely.
func BundlePatterns(manifest *types.Manifest, defaults []string) []string {
	patterns := []string{types.ManifestFileName}
	if manifest != nil {
		if allow := manifest.BundleAllowList(); len(allow) > 0 {
			return append(patterns, allow...)
		}
	}
	return append(patterns, defaults...)
}

// DefaultPatterns builds the discovery patterns of a runtime: top-level
// scripts matching scriptGlob, no dotfiles, and the whole content of each
// directory. Directories are made relative to workspace. Empty
// directories and the workspace itself are skipped.
func DefaultPatterns(workspace string, scriptGlob string, dirs ...string) []string {
	patterns := []string{"!.*", scriptGlob}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		rel := dir
		if filepath.IsAbs(dir) {
			var err error
			rel, err = filepath.Rel(workspace, dir)
			if err != nil {
				continue
			}
		}
		rel = filepath.ToSlash(filepath.Clean(rel))
		if rel == "." {
			continue
		}
		patterns = append(patterns, rel+"/**")
	}
	return patterns
}

// ActionBase picks the directory bundle entry names are relative to:
// platform.base resolved against the workspace, then fallback, then the
// workspace itself.
func ActionBase(manifest *types.Manifest, workspace string, fallback string) string {
	if manifest != nil {
		if base := strings.TrimSpace(manifest.Platform.Base); base != "" {
			if filepath.IsAbs(base) {
				return filepath.Clean(base)
			}
			return filepath.Join(workspace, filepath.FromSlash(base))
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return workspace
}
