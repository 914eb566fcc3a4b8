package adapters

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

const (
	flatManifestEntry = "META-INF/MANIFEST.MF"
	flatMetaEntry     = "dunes-meta-inf"
	flatElementsDir   = "elements"

	elementDataEntry   = "data"
	elementInfoEntry   = "info"
	elementTagsEntry   = "tags"
	elementBundleEntry = "bundle"

	elementInfoSuffix = ".element_info.xml"
	tagsSuffix        = ".tags.xml"
	bundleSuffix      = ".bundle.zip"
)

// TreeConverterAdapter converts a platform tree into the flat package
// layout the platform imports, and back.
type TreeConverterAdapter struct {
	Logger zerolog.Logger
}

func NewTreeConverterAdapter(logger zerolog.Logger) TreeConverterAdapter {
	return TreeConverterAdapter{Logger: logger}
}

type flatElement struct {
	id    string
	name  string
	files map[string]string
}

func (a TreeConverterAdapter) Flatten(treeDir string, packagePath string) error {
	project, err := readPom(filepath.Join(treeDir, "pom.xml"))
	if err != nil {
		return err
	}
	elements, err := scanScriptModules(ScriptModuleDir(treeDir))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(packagePath), 0o755); err != nil {
		return treeError(errbuilder.CodeInternal, "failed to create package directory", err)
	}
	out, err := os.Create(packagePath)
	if err != nil {
		return treeError(errbuilder.CodeInternal, "failed to create package", err)
	}
	writer := zip.NewWriter(out)
	writeErr := func() error {
		manifest := "Manifest-Version: 1.0\nCreated-By: polyglotpkg\n"
		if err := writeZipData(writer, flatManifestEntry, []byte(manifest)); err != nil {
			return err
		}
		meta, err := metaDocument(project).WriteToBytes()
		if err != nil {
			return err
		}
		if err := writeZipData(writer, flatMetaEntry, meta); err != nil {
			return err
		}
		for _, element := range elements {
			for _, entry := range []string{elementDataEntry, elementInfoEntry, elementTagsEntry, elementBundleEntry} {
				source, ok := element.files[entry]
				if !ok {
					continue
				}
				data, err := os.ReadFile(source)
				if err != nil {
					return err
				}
				if err := writeZipData(writer, path.Join(flatElementsDir, element.id, entry), data); err != nil {
					return err
				}
			}
			a.Logger.Debug().Str("element", element.name).Str("id", element.id).Msg("flattened")
		}
		return writer.Close()
	}()
	if writeErr != nil {
		out.Close()
		os.Remove(packagePath)
		return treeError(errbuilder.CodeInternal, "failed to write package", writeErr)
	}
	if err := out.Close(); err != nil {
		return treeError(errbuilder.CodeInternal, "failed to close package", err)
	}
	a.Logger.Info().Str("package", packagePath).Int("elements", len(elements)).Msg("created flat package")
	return nil
}

func (a TreeConverterAdapter) Expand(packagePath string, treeDir string) error {
	reader, err := zip.OpenReader(packagePath)
	if err != nil {
		return treeError(errbuilder.CodeNotFound, "failed to open package", err)
	}
	defer reader.Close()

	var project types.TreeDescriptor
	elements := map[string]map[string]*zip.File{}
	var ids []string
	for _, file := range reader.File {
		switch {
		case file.Name == flatMetaEntry:
			data, err := readZipFile(file)
			if err != nil {
				return treeError(errbuilder.CodeInternal, "failed to read package metadata", err)
			}
			project, err = parseMeta(data)
			if err != nil {
				return err
			}
		case strings.HasPrefix(file.Name, flatElementsDir+"/"):
			parts := strings.Split(strings.TrimPrefix(file.Name, flatElementsDir+"/"), "/")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				continue
			}
			if _, ok := elements[parts[0]]; !ok {
				elements[parts[0]] = map[string]*zip.File{}
				ids = append(ids, parts[0])
			}
			elements[parts[0]][parts[1]] = file
		}
	}
	if project.ArtifactID == "" {
		return treeError(errbuilder.CodeInvalidArgument, "package has no "+flatMetaEntry+" entry", nil)
	}

	moduleDir := ScriptModuleDir(treeDir)
	if err := os.MkdirAll(moduleDir, 0o755); err != nil {
		return treeError(errbuilder.CodeInternal, "failed to create tree directory", err)
	}
	pom := pomDocument(project)
	pom.Indent(2)
	if err := pom.WriteToFile(filepath.Join(treeDir, "pom.xml")); err != nil {
		return treeError(errbuilder.CodeInternal, "failed to write pom.xml", err)
	}

	sort.Strings(ids)
	for _, id := range ids {
		files := elements[id]
		dataFile, ok := files[elementDataEntry]
		if !ok {
			a.Logger.Warn().Str("id", id).Msg("element without data, skipped")
			continue
		}
		data, err := readZipFile(dataFile)
		if err != nil {
			return treeError(errbuilder.CodeInternal, "failed to read element "+id, err)
		}
		name, err := elementName(data)
		if err != nil {
			return treeError(errbuilder.CodeInvalidArgument, "invalid element "+id, err)
		}
		if err := os.WriteFile(filepath.Join(moduleDir, name+".xml"), data, 0o644); err != nil {
			return treeError(errbuilder.CodeInternal, "failed to write element "+name, err)
		}
		targets := map[string]string{
			elementInfoEntry:   name + elementInfoSuffix,
			elementTagsEntry:   name + tagsSuffix,
			elementBundleEntry: name + bundleSuffix,
		}
		for entry, target := range targets {
			file, ok := files[entry]
			if !ok {
				continue
			}
			content, err := readZipFile(file)
			if err != nil {
				return treeError(errbuilder.CodeInternal, "failed to read element "+id, err)
			}
			if err := os.WriteFile(filepath.Join(moduleDir, target), content, 0o644); err != nil {
				return treeError(errbuilder.CodeInternal, "failed to write "+target, err)
			}
		}
		a.Logger.Debug().Str("element", name).Str("id", id).Msg("expanded")
	}
	return nil
}

func readPom(pomPath string) (types.TreeDescriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(pomPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.TreeDescriptor{}, treeError(errbuilder.CodeNotFound, "pom.xml not found in tree", err)
		}
		return types.TreeDescriptor{}, treeError(errbuilder.CodeInvalidArgument, "failed to parse pom.xml", err)
	}
	project := doc.SelectElement("project")
	if project == nil {
		return types.TreeDescriptor{}, treeError(errbuilder.CodeInvalidArgument, "pom.xml has no project element", nil)
	}
	text := func(tag string) string {
		if element := project.SelectElement(tag); element != nil {
			return strings.TrimSpace(element.Text())
		}
		return ""
	}
	return types.TreeDescriptor{
		GroupID:    text("groupId"),
		ArtifactID: text("artifactId"),
		Version:    text("version"),
	}, nil
}

// scanScriptModules pairs every action descriptor with its sibling files.
// The element id comes from the element_info properties.
func scanScriptModules(moduleDir string) ([]flatElement, error) {
	entries, err := os.ReadDir(moduleDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, treeError(errbuilder.CodeInternal, "failed to read script modules", err)
	}
	var elements []flatElement
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".xml") ||
			strings.HasSuffix(name, elementInfoSuffix) || strings.HasSuffix(name, tagsSuffix) {
			continue
		}
		action := strings.TrimSuffix(name, ".xml")
		files := map[string]string{elementDataEntry: filepath.Join(moduleDir, name)}
		for entryName, suffix := range map[string]string{
			elementInfoEntry:   elementInfoSuffix,
			elementTagsEntry:   tagsSuffix,
			elementBundleEntry: bundleSuffix,
		} {
			candidate := filepath.Join(moduleDir, action+suffix)
			if _, err := os.Stat(candidate); err == nil {
				files[entryName] = candidate
			}
		}
		infoPath, ok := files[elementInfoEntry]
		if !ok {
			return nil, treeError(errbuilder.CodeInvalidArgument, "missing element info for "+action, nil)
		}
		id, err := elementID(infoPath)
		if err != nil {
			return nil, err
		}
		elements = append(elements, flatElement{id: id, name: action, files: files})
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].name < elements[j].name
	})
	return elements, nil
}

func elementID(infoPath string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(infoPath); err != nil {
		return "", treeError(errbuilder.CodeInvalidArgument, "failed to parse "+filepath.Base(infoPath), err)
	}
	for _, entry := range doc.FindElements("//entry") {
		if entry.SelectAttrValue("key", "") == "id" {
			if id := strings.TrimSpace(entry.Text()); id != "" {
				return id, nil
			}
		}
	}
	return "", treeError(errbuilder.CodeInvalidArgument, "no id in "+filepath.Base(infoPath), nil)
}

func elementName(data []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return "", err
	}
	root := doc.Root()
	if root == nil {
		return "", errors.New("element data has no root")
	}
	name := strings.TrimSpace(root.SelectAttrValue("name", ""))
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", errors.New("element data has no usable name")
	}
	return name, nil
}

func metaDocument(project types.TreeDescriptor) *etree.Document {
	doc := newXMLDocument(true)
	doc.CreateDirective(propertiesDoctype)
	properties := doc.CreateElement("properties")
	properties.CreateElement("comment").SetText("UTF-16")
	for _, entry := range []struct{ key, value string }{
		{"groupId", project.GroupID},
		{"artifactId", project.ArtifactID},
		{"version", project.Version},
	} {
		element := properties.CreateElement("entry")
		element.CreateAttr("key", entry.key)
		element.SetText(entry.value)
	}
	doc.Indent(2)
	return doc
}

func parseMeta(data []byte) (types.TreeDescriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return types.TreeDescriptor{}, treeError(errbuilder.CodeInvalidArgument, "failed to parse package metadata", err)
	}
	var project types.TreeDescriptor
	for _, entry := range doc.FindElements("//entry") {
		value := strings.TrimSpace(entry.Text())
		switch entry.SelectAttrValue("key", "") {
		case "groupId":
			project.GroupID = value
		case "artifactId":
			project.ArtifactID = value
		case "version":
			project.Version = value
		}
	}
	return project, nil
}

func writeZipData(writer *zip.Writer, name string, data []byte) error {
	dest, err := writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: archiveEpoch,
	})
	if err != nil {
		return err
	}
	_, err = io.Copy(dest, bytes.NewReader(data))
	return err
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

var _ ports.TreeConverterPort = TreeConverterAdapter{}
