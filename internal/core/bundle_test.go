package core

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"polyglotpkg/internal/types"
)

func TestBundlePatternsAllowListReplacesDefaults(t *testing.T) {
	manifest := &types.Manifest{Platform: types.PlatformSpec{Files: []string{"a.txt"}}}
	got := BundlePatterns(manifest, []string{"!.*", "*.js", "out/**"})
	if diff := cmp.Diff([]string{"package.json", "a.txt"}, got); diff != "" {
		t.Fatalf("unexpected patterns (-want +got):\n%s", diff)
	}
}

func TestBundlePatternsTopLevelFilesWin(t *testing.T) {
	manifest := &types.Manifest{
		Files:    []string{"lib/**"},
		Platform: types.PlatformSpec{Files: []string{"a.txt"}},
	}
	assert.Equal(t, []string{"package.json", "lib/**"}, BundlePatterns(manifest, nil))
}

func TestBundlePatternsDefaults(t *testing.T) {
	got := BundlePatterns(&types.Manifest{}, []string{"!.*", "*.py"})
	assert.Equal(t, []string{"package.json", "!.*", "*.py"}, got)
}

func TestDefaultPatterns(t *testing.T) {
	workspace := filepath.Join(string(filepath.Separator), "work", "project")
	got := DefaultPatterns(workspace, "*.js",
		filepath.Join(workspace, "out"),
		"",
		workspace,
		filepath.Join(workspace, "src", "lib"),
		filepath.Join(workspace, "..", "shared"),
	)
	want := []string{"!.*", "*.js", "out/**", "src/lib/**", "../shared/**"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected patterns (-want +got):\n%s", diff)
	}
}

func TestActionBase(t *testing.T) {
	workspace := filepath.Join(string(filepath.Separator), "work", "project")
	withBase := &types.Manifest{Platform: types.PlatformSpec{Base: "out"}}

	assert.Equal(t, filepath.Join(workspace, "out"), ActionBase(withBase, workspace, "/elsewhere"))
	assert.Equal(t, "/elsewhere", ActionBase(&types.Manifest{}, workspace, "/elsewhere"))
	assert.Equal(t, workspace, ActionBase(&types.Manifest{}, workspace, ""))
}
