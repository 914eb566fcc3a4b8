package adapters

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

const (
	pomNamespace      = "http://maven.apache.org/POM/4.0.0"
	pomSchemaLocation = "http://maven.apache.org/POM/4.0.0 http://maven.apache.org/xsd/maven-4.0.0.xsd"
	xsiNamespace      = "http://www.w3.org/2001/XMLSchema-instance"
	propertiesDoctype = `DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd"`

	scriptModuleAPIVersion = "6.0.0"
	scriptModuleOperations = "vfe"
	scriptModuleType       = "ScriptModule"
)

// ScriptModuleDir returns the directory holding the script module
// descriptors of a platform tree.
func ScriptModuleDir(treeDir string) string {
	return filepath.Join(treeDir, "src", "main", "resources", scriptModuleType)
}

type TreeWriterAdapter struct {
	Logger zerolog.Logger
}

func NewTreeWriterAdapter(logger zerolog.Logger) TreeWriterAdapter {
	return TreeWriterAdapter{Logger: logger}
}

// WriteTree regenerates every descriptor of the tree. Existing files are
// overwritten, unrelated files are left alone.
func (a TreeWriterAdapter) WriteTree(treeDir string, tree types.TreeDescriptor, bundlePath string) error {
	if strings.TrimSpace(treeDir) == "" {
		return treeError(errbuilder.CodeInvalidArgument, "tree directory is empty", nil)
	}
	if strings.TrimSpace(tree.ArtifactID) == "" {
		return treeError(errbuilder.CodeInvalidArgument, "action name is empty", nil)
	}
	moduleDir := ScriptModuleDir(treeDir)
	if err := os.MkdirAll(moduleDir, 0o755); err != nil {
		return treeError(errbuilder.CodeInternal, "failed to create tree directory", err)
	}
	a.Logger.Info().Str("dir", treeDir).Msg("creating vRO tree structure")

	steps := []struct {
		path string
		doc  *etree.Document
	}{
		{filepath.Join(treeDir, "pom.xml"), pomDocument(tree)},
		{filepath.Join(moduleDir, tree.ArtifactID+".xml"), actionDocument(tree)},
		{filepath.Join(moduleDir, tree.ArtifactID+".element_info.xml"), elementInfoDocument(tree)},
		{filepath.Join(moduleDir, tree.ArtifactID+".tags.xml"), tagsDocument(tree.Tags)},
	}
	for _, step := range steps {
		step.doc.Indent(2)
		if err := step.doc.WriteToFile(step.path); err != nil {
			return treeError(errbuilder.CodeInternal, "failed to write "+filepath.Base(step.path), err)
		}
		a.Logger.Debug().Str("file", step.path).Msg("written")
	}

	dest := filepath.Join(moduleDir, tree.ArtifactID+".bundle.zip")
	if err := copyRegularFile(bundlePath, dest); err != nil {
		return treeError(errbuilder.CodeInternal, "failed to copy bundle into tree", err)
	}
	return nil
}

func newXMLDocument(standalone bool) *etree.Document {
	doc := etree.NewDocument()
	inst := `version="1.0" encoding="UTF-8"`
	if standalone {
		inst += ` standalone="no"`
	}
	doc.CreateProcInst("xml", inst)
	return doc
}

func pomDocument(tree types.TreeDescriptor) *etree.Document {
	doc := newXMLDocument(false)
	project := doc.CreateElement("project")
	project.CreateAttr("xmlns", pomNamespace)
	project.CreateAttr("xmlns:xsi", xsiNamespace)
	project.CreateAttr("xsi:schemaLocation", pomSchemaLocation)
	project.CreateElement("modelVersion").SetText("4.0.0")
	project.CreateElement("groupId").SetText(tree.GroupID)
	project.CreateElement("artifactId").SetText(tree.ArtifactID)
	project.CreateElement("version").SetText(tree.Version)
	project.CreateElement("packaging").SetText("package")
	return doc
}

func actionDocument(tree types.TreeDescriptor) *etree.Document {
	doc := newXMLDocument(false)
	module := doc.CreateElement("dunes-script-module")
	module.CreateAttr("name", tree.ArtifactID)
	if tree.ResultType != "" {
		module.CreateAttr("result-type", tree.ResultType)
	}
	module.CreateAttr("api-version", scriptModuleAPIVersion)
	module.CreateAttr("id", tree.ID)
	module.CreateAttr("version", tree.ActionVersion)
	module.CreateAttr("allowed-operations", scriptModuleOperations)
	module.CreateAttr("memory-limit", strconv.FormatInt(tree.MemoryLimitBytes, 10))
	module.CreateAttr("timeout", strconv.Itoa(tree.TimeoutSec))
	module.CreateElement("description").SetText(tree.Description)
	module.CreateElement("runtime").SetText(string(tree.Runtime))
	module.CreateElement("entry-point").SetText(tree.EntryPoint)
	for _, input := range tree.Inputs {
		param := module.CreateElement("param")
		param.CreateAttr("n", input.Name)
		param.CreateAttr("t", input.Type)
	}
	return doc
}

func elementInfoDocument(tree types.TreeDescriptor) *etree.Document {
	doc := newXMLDocument(true)
	doc.CreateDirective(propertiesDoctype)
	properties := doc.CreateElement("properties")
	properties.CreateElement("comment").SetText("UTF-16")
	entries := []struct{ key, value string }{
		{"categoryPath", tree.CategoryPath},
		{"type", scriptModuleType},
		{"id", tree.ID},
	}
	for _, entry := range entries {
		element := properties.CreateElement("entry")
		element.CreateAttr("key", entry.key)
		element.SetText(entry.value)
	}
	return doc
}

func tagsDocument(tags []string) *etree.Document {
	doc := newXMLDocument(false)
	root := doc.CreateElement("tags")
	for _, tag := range tags {
		element := root.CreateElement("tag")
		element.CreateAttr("name", tag)
		element.CreateAttr("global", "true")
	}
	return doc
}

func treeError(code errbuilder.ErrCode, msg string, cause error) error {
	return types.NewPipelineError(types.ErrTreeSynthesis, code, msg, cause)
}

var _ ports.TreeWriterPort = TreeWriterAdapter{}
