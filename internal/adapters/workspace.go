package adapters

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/bmatcuk/doublestar/v4"

	"polyglotpkg/internal/ports"
)

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

func (a WorkspaceAdapter) Glob(root string, patterns []string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace root is empty")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve workspace root").
			WithCause(err)
	}

	var includes []string
	var excludes []string
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "!") {
			excludes = append(excludes, strings.TrimPrefix(pattern, "!"))
			continue
		}
		includes = append(includes, pattern)
	}
	for _, pattern := range append(append([]string(nil), includes...), excludes...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid glob pattern: " + pattern)
		}
	}

	seen := map[string]struct{}{}
	var matches []string
	for _, pattern := range includes {
		found, err := globFiles(absRoot, pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			matches = append(matches, path)
		}
	}

	var result []string
	for _, path := range matches {
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			continue
		}
		if excluded(filepath.ToSlash(rel), excludes) {
			continue
		}
		result = append(result, path)
	}
	sort.Strings(result)
	return result, nil
}

// globFiles expands one pattern. The literal leading part of the pattern is
// resolved against root so that patterns may leave the workspace ("../out/**").
// A literal directory is expanded to its whole content.
func globFiles(root string, pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(pattern)
	baseDir := filepath.Join(root, filepath.FromSlash(base))
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	if !hasGlobMeta(rest) {
		target := filepath.Join(baseDir, filepath.FromSlash(rest))
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			rest = rest + "/**"
		}
	}
	found, err := doublestar.Glob(os.DirFS(baseDir), rest, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to expand glob pattern: " + pattern).
			WithCause(err)
	}
	paths := make([]string, 0, len(found))
	for _, rel := range found {
		paths = append(paths, filepath.Join(baseDir, filepath.FromSlash(rel)))
	}
	return paths, nil
}

func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[{\`)
}

func excluded(rel string, excludes []string) bool {
	for _, pattern := range excludes {
		if matched, err := doublestar.Match(pattern, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func (a WorkspaceAdapter) ListFiles(dir string, skip []string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	skipped := map[string]struct{}{}
	for _, name := range skip {
		skipped[name] = struct{}{}
	}
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if filepath.Dir(path) == filepath.Clean(dir) {
			if _, ok := skipped[d.Name()]; ok {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan directory").
			WithCause(err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (a WorkspaceAdapter) CopyTree(src string, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("source directory not found").
			WithCause(err)
	}
	if !info.IsDir() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source is not a directory: " + src)
	}
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyRegularFile(path, target)
	})
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy directory").
			WithCause(err)
	}
	return nil
}

func copyRegularFile(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer srcFile.Close()
	info, err := srcFile.Stat()
	if err != nil {
		return err
	}
	destFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
