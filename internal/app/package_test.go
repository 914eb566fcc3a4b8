package app

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"polyglotpkg/internal/adapters"
	"polyglotpkg/internal/shared"
	"polyglotpkg/internal/types"
)

// stubRunner stands in for the compiler and the package installers. The
// compiler run writes the compiled file into out/, installers drop one
// module into their target directory.
type stubRunner struct {
	compileOutput []byte
	compileErr    error
	installErr    error
	installs      []string
}

func (r *stubRunner) Run(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	switch filepath.Base(name) {
	case "tsc":
		if r.compileErr != nil {
			return r.compileOutput, r.compileErr
		}
		return r.compileOutput, writeTestFile(filepath.Join(dir, "out", "index.js"), "exports.handler = () => 1;")
	case "npm":
		r.installs = append(r.installs, name)
		if r.installErr != nil {
			return []byte("npm ERR! 404 Not Found"), r.installErr
		}
		return nil, writeTestFile(filepath.Join(dir, "node_modules", "left-pad", "index.js"), "module.exports = 1;")
	case "pip3":
		r.installs = append(r.installs, name)
		if r.installErr != nil {
			return []byte("ERROR: No matching distribution"), r.installErr
		}
		for i, arg := range args {
			if arg == "--target" && i+1 < len(args) {
				return nil, writeTestFile(filepath.Join(args[i+1], "requests", "__init__.py"), "")
			}
		}
		return nil, errors.New("pip3 called without --target")
	}
	return nil, &shared.ExecError{Command: name, ExitCode: -1, Err: errors.New("unexpected command")}
}

func writeTestFile(path string, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		require.NoError(t, writeTestFile(filepath.Join(root, filepath.FromSlash(name)), content))
	}
	return root
}

func testService(runner *stubRunner) Service {
	return NewServiceWithRunner(zerolog.Nop(), runner)
}

func bundleEntries(t *testing.T, path string) []string {
	t.Helper()
	reader, err := zip.OpenReader(path)
	if !errors.Is(err, zip.ErrInsecurePath) {
		require.NoError(t, err)
	}
	defer reader.Close()
	var names []string
	for _, file := range reader.File {
		names = append(names, file.Name)
	}
	sort.Strings(names)
	return names
}

const nodeManifest = `{
  "name": "hello",
  "description": "Says hello",
  "version": "1.0.0",
  "dependencies": {"left-pad": "^1.3.0"},
  "platform": {"action": "hello", "entrypoint": "out/index.handler", "runtime": "nodejs"},
  "abx": {"inputs": {"name": "string"}}
}`

const nodeCompilerConfig = `{
  // compiled output lands next to the sources
  "compilerOptions": {"outDir": "out", "rootDir": "src"}
}`

func TestPackage_NodeEventOrderAndBundle(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  nodeManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	sink := &adapters.RecordingEventSink{}
	runner := &stubRunner{}

	result, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
		Events:     sink,
	})
	require.NoError(t, err)
	assert.Equal(t, types.ActionTypeABX, result.ActionType)
	assert.Equal(t, types.ActionRuntimeABXNode, result.Runtime)
	assert.Empty(t, result.TreeDir)

	wantEvents := []types.Event{
		types.EventCompileStart,
		types.EventCompileEnd,
		types.EventDependenciesStart,
		types.EventDependenciesEnd,
		types.EventBundleStart,
		types.EventBundleEnd,
	}
	if diff := cmp.Diff(wantEvents, sink.Events()); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantEvents, result.Events); diff != "" {
		t.Fatalf("unexpected result events (-want +got):\n%s", diff)
	}

	want := []string{
		"node_modules/left-pad/index.js",
		"out/index.js",
		"package.json",
		"src/index.ts",
	}
	if diff := cmp.Diff(want, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"npm"}, runner.installs)
}

func TestPackage_NodeCompileErrorStopsPipeline(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  nodeManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => missing;",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	sink := &adapters.RecordingEventSink{}
	runner := &stubRunner{
		compileOutput: []byte("src/index.ts(1,30): error TS2304: Cannot find name 'missing'.\n"),
		compileErr:    &shared.ExecError{Command: "tsc", ExitCode: 2, Err: errors.New("exit status 2")},
	}

	_, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
		Events:     sink,
	})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrCompilation))
	var perr *types.PipelineError
	require.True(t, errors.As(err, &perr))
	require.Len(t, perr.Diagnostics, 1)
	assert.Equal(t, "TS2304", perr.Diagnostics[0].Code)
	assert.Equal(t, 1, perr.Diagnostics[0].Line)

	if diff := cmp.Diff([]types.Event{types.EventCompileStart, types.EventCompileError}, sink.Events()); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	assert.NoFileExists(t, bundle)
	assert.Empty(t, runner.installs)
}

func TestPackage_NodeMissingCompilerConfig(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json": nodeManifest,
		"src/index.ts": "export const handler = () => 1;",
	})
	sink := &adapters.RecordingEventSink{}

	_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
		Events:     sink,
	})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrMissingCompilerConfig))
	assert.Empty(t, sink.Events())
}

func TestPackage_NodeDependenciesInstalledOnce(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  nodeManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
	})
	runner := &stubRunner{}
	svc := testService(runner)
	req := PackageRequest{Workspace: ws, BundlePath: filepath.Join(t.TempDir(), "bundle.zip")}

	_, err := svc.Package(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Package(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, runner.installs, 1)
}

const vroManifest = `{
  "name": "foo",
  "description": "Says hello",
  "version": "1.0.0",
  "platform": {"action": "foo", "entrypoint": "handler.handler", "runtime": "nodejs"},
  "vro": {"module": "com.acme", "inputs": {"x": "string"}}
}`

func TestPackage_WritesVroTree(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  vroManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
	})
	treeDir := filepath.Join(t.TempDir(), "vro")

	result, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
		TreeDir:    treeDir,
	})
	require.NoError(t, err)
	assert.Equal(t, types.ActionTypeVRO, result.ActionType)
	assert.Equal(t, types.ActionRuntimeVRONode12, result.Runtime)
	assert.Equal(t, treeDir, result.TreeDir)

	moduleDir := adapters.ScriptModuleDir(treeDir)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromFile(filepath.Join(moduleDir, "foo.xml")))
	action := doc.Root()
	require.NotNil(t, action)

	wantID := uuid.NewSHA1(uuid.NameSpaceDNS, []byte("com.acme:foo")).String()
	assert.Equal(t, wantID, action.SelectAttrValue("id", ""))
	assert.Equal(t, "180", action.SelectAttrValue("timeout", ""))
	assert.Equal(t, "67108864", action.SelectAttrValue("memory-limit", ""))
	assert.Equal(t, "1.0.0", action.SelectAttrValue("version", ""))
	assert.Equal(t, "node:12", action.SelectElement("runtime").Text())

	params := action.SelectElements("param")
	require.Len(t, params, 1)
	assert.Equal(t, "x", params[0].SelectAttrValue("n", ""))
	assert.Equal(t, "string", params[0].SelectAttrValue("t", ""))
	assert.FileExists(t, filepath.Join(moduleDir, "foo.bundle.zip"))
}

func TestPackage_SkipTreeLeavesExistingTree(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  vroManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
	})
	treeDir := filepath.Join(t.TempDir(), "vro")
	sentinel := filepath.Join(treeDir, "pom.xml")
	require.NoError(t, writeTestFile(sentinel, "<project/>"))

	result, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
		TreeDir:    treeDir,
		SkipTree:   true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.TreeDir)

	data, err := os.ReadFile(sentinel)
	require.NoError(t, err)
	assert.Equal(t, "<project/>", string(data))
	entries, err := os.ReadDir(treeDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPackage_AllowListReplacesDefaults(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json": `{
  "name": "py",
  "version": "1.0.0",
  "files": ["a.txt"],
  "platform": {"action": "py", "entrypoint": "handler.handler", "runtime": "python"},
  "abx": {}
}`,
		"a.txt":          "kept",
		"b.txt":          "dropped",
		"main.py":        "print(1)",
		"src/handler.py": "def handler(context, inputs): return {}",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")

	_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"a.txt", "package.json"}, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
}

const pythonManifest = `{
  "name": "py",
  "version": "1.0.0",
  "platform": {"action": "py", "entrypoint": "handler.handler", "runtime": "python"},
  "abx": {}
}`

func TestPackage_PythonInstallsRequirements(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":     pythonManifest,
		"requirements.txt": "requests>=2.0\n",
		"src/handler.py":   "def handler(context, inputs): return {}",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	runner := &stubRunner{}
	sink := &adapters.RecordingEventSink{}

	_, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
		Events:     sink,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pip3"}, runner.installs)
	assert.Len(t, sink.Events(), 6)

	want := []string{"out/handler.py", "package.json", "requests/__init__.py"}
	if diff := cmp.Diff(want, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
}

func TestPackage_PythonWithoutRequirements(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":   pythonManifest,
		"src/handler.py": "def handler(context, inputs): return {}",
	})
	runner := &stubRunner{}

	_, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
	})
	require.NoError(t, err)
	assert.Empty(t, runner.installs)
}

func TestPackage_ShellHasNoDependencyPhase(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json": `{
  "name": "ps",
  "version": "1.0.0",
  "platform": {"action": "ps", "entrypoint": "handler.ps1", "runtime": "powershell"},
  "abx": {}
}`,
		"src/handler.ps1": "function handler($context, $inputs) {}",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	sink := &adapters.RecordingEventSink{}

	_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
		Events:     sink,
	})
	require.NoError(t, err)
	want := []types.Event{
		types.EventCompileStart,
		types.EventCompileEnd,
		types.EventBundleStart,
		types.EventBundleEnd,
	}
	if diff := cmp.Diff(want, sink.Events()); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"out/handler.ps1", "package.json"}, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
}

func TestPackage_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		override types.ActionType
		kind     types.ErrorKind
	}{
		{
			name:  "missing manifest",
			files: map[string]string{"src/handler.py": ""},
			kind:  types.ErrManifestNotFound,
		},
		{
			name:  "no platform block",
			files: map[string]string{"package.json": `{"name": "x", "platform": {"runtime": "python"}}`},
			kind:  types.ErrUnsupportedAction,
		},
		{
			name:     "override without matching block",
			files:    map[string]string{"package.json": pythonManifest},
			override: types.ActionTypeVRO,
			kind:     types.ErrUnsupportedAction,
		},
		{
			name: "unknown runtime",
			files: map[string]string{"package.json": `{
  "name": "x",
  "platform": {"action": "x", "runtime": "go"},
  "abx": {}
}`},
			kind: types.ErrUnsupportedRuntime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := writeWorkspace(t, tt.files)
			bundle := filepath.Join(t.TempDir(), "bundle.zip")
			sink := &adapters.RecordingEventSink{}

			_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
				Workspace:        ws,
				BundlePath:       bundle,
				PlatformOverride: tt.override,
				Events:           sink,
			})
			require.Error(t, err)
			assert.Equal(t, tt.kind, types.KindOf(err))
			assert.Empty(t, sink.Events())
			assert.NoFileExists(t, bundle)
		})
	}
}

func TestPackage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := testService(&stubRunner{}).Package(ctx, PackageRequest{Workspace: t.TempDir()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPackage_WritesReport(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":   pythonManifest,
		"src/handler.py": "def handler(context, inputs): return {}",
	})
	reportPath := filepath.Join(t.TempDir(), "reports", "run.yaml")

	_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
		ReportPath: reportPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var report types.RunReport
	require.NoError(t, yaml.Unmarshal(data, &report))
	assert.Equal(t, types.ActionTypeABX, report.ActionType)
	assert.Equal(t, types.ActionRuntimeABXPython, report.Runtime)
	assert.Equal(t, ws, report.Workspace)
	assert.Len(t, report.Events, 6)
}

func TestPackage_NodeAllowListLeavesOutDependencies(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json": `{
  "name": "hello",
  "version": "1.0.0",
  "dependencies": {"left-pad": "^1.3.0"},
  "platform": {"action": "hello", "entrypoint": "out/index.handler", "runtime": "nodejs", "files": ["a.txt"]},
  "abx": {}
}`,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
		"a.txt":         "kept",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	runner := &stubRunner{}

	_, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"npm"}, runner.installs)
	assert.FileExists(t, filepath.Join(ws, "tmp", "node_modules", "left-pad", "index.js"))
	if diff := cmp.Diff([]string{"a.txt", "package.json"}, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
}

func TestPackage_DependencyFailureStopsPipeline(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  nodeManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	sink := &adapters.RecordingEventSink{}
	runner := &stubRunner{
		installErr: &shared.ExecError{Command: "npm", ExitCode: 1, Err: errors.New("exit status 1")},
	}

	_, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
		Events:     sink,
	})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrDependencyInstall))
	var perr *types.PipelineError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.ExitCode)

	want := []types.Event{
		types.EventCompileStart,
		types.EventCompileEnd,
		types.EventDependenciesStart,
		types.EventDependenciesError,
	}
	if diff := cmp.Diff(want, sink.Events()); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
	assert.NoFileExists(t, bundle)
}

func TestPackage_FailedStrategySkipsTree(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":  vroManifest,
		"tsconfig.json": nodeCompilerConfig,
		"src/index.ts":  "export const handler = () => 1;",
	})
	treeDir := filepath.Join(t.TempDir(), "vro")
	runner := &stubRunner{
		installErr: &shared.ExecError{Command: "npm", ExitCode: 1, Err: errors.New("exit status 1")},
	}

	result, err := testService(runner).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
		TreeDir:    treeDir,
	})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrDependencyInstall))
	assert.Empty(t, result.TreeDir)
	assert.NoDirExists(t, treeDir)
}

func TestPackage_BundleWriteFailure(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":   pythonManifest,
		"src/handler.py": "def handler(context, inputs): return {}",
	})
	blocker := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, writeTestFile(blocker, "not a directory"))
	sink := &adapters.RecordingEventSink{}

	_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(blocker, "bundle.zip"),
		Events:     sink,
	})
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrBundleWrite))

	want := []types.Event{
		types.EventCompileStart,
		types.EventCompileEnd,
		types.EventDependenciesStart,
		types.EventDependenciesEnd,
		types.EventBundleStart,
		types.EventBundleError,
	}
	if diff := cmp.Diff(want, sink.Events()); diff != "" {
		t.Fatalf("unexpected events (-want +got):\n%s", diff)
	}
}

func TestPackage_PythonWithoutRequirementsIgnoresStaleDependencies(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":             pythonManifest,
		"src/handler.py":           "def handler(context, inputs): return {}",
		"tmp/requests/__init__.py": "",
		"tmp/deps.sha256":          "0000",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")

	_, err := testService(&stubRunner{}).Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"out/handler.py", "package.json"}, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
}

func TestPackage_BaseBelowWorkspaceIsReported(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json": `{
  "name": "py",
  "version": "1.0.0",
  "platform": {"action": "py", "entrypoint": "handler.handler", "runtime": "python", "base": "out"},
  "abx": {}
}`,
		"src/handler.py": "def handler(context, inputs): return {}",
	})
	bundle := filepath.Join(t.TempDir(), "bundle.zip")
	var logs bytes.Buffer
	svc := NewServiceWithRunner(zerolog.New(&logs), &stubRunner{})

	_, err := svc.Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: bundle,
	})
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"../package.json", "handler.py"}, bundleEntries(t, bundle)); diff != "" {
		t.Fatalf("unexpected bundle entries (-want +got):\n%s", diff)
	}
	assert.Contains(t, logs.String(), "climbs out of the archive root")
	assert.Contains(t, logs.String(), `"manifest_entry":"../package.json"`)
}

func TestPackage_PythonLogsParsedRequirements(t *testing.T) {
	ws := writeWorkspace(t, map[string]string{
		"package.json":     pythonManifest,
		"requirements.txt": "# pinned\nrequests>=2.0\nsix==1.16.0\n",
		"src/handler.py":   "def handler(context, inputs): return {}",
	})
	var logs bytes.Buffer
	svc := NewServiceWithRunner(zerolog.New(&logs).Level(zerolog.DebugLevel), &stubRunner{})

	_, err := svc.Package(context.Background(), PackageRequest{
		Workspace:  ws,
		BundlePath: filepath.Join(t.TempDir(), "bundle.zip"),
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"requirements":2`)
}
