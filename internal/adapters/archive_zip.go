package adapters

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

// archiveEpoch is stamped on every entry so that identical inputs produce
// identical archives. It is the earliest time the zip format can express.
var archiveEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

type ZipArchiveAdapter struct {
	Logger zerolog.Logger
}

func NewZipArchiveAdapter(logger zerolog.Logger) ZipArchiveAdapter {
	return ZipArchiveAdapter{Logger: logger}
}

type archiveEntry struct {
	name   string
	source string
}

// WriteArchive zips the filesets in order. An entry name that appears twice
// keeps its first position and the content of its last source.
func (a ZipArchiveAdapter) WriteArchive(filesets []types.BundleFileset, destination string) error {
	if strings.TrimSpace(destination) == "" {
		return bundleError(errbuilder.CodeInvalidArgument, "archive destination is empty", nil)
	}
	var entries []archiveEntry
	index := map[string]int{}
	for _, fileset := range filesets {
		for _, file := range fileset.Files {
			rel, err := filepath.Rel(fileset.BaseDir, file)
			if err != nil {
				return bundleError(errbuilder.CodeInvalidArgument, "file is not relative to base directory: "+file, err)
			}
			name := filepath.ToSlash(rel)
			if pos, ok := index[name]; ok {
				a.Logger.Debug().Str("entry", name).Str("source", file).Msg("archive entry replaced")
				entries[pos].source = file
				continue
			}
			index[name] = len(entries)
			entries = append(entries, archiveEntry{name: name, source: file})
		}
	}

	if err := os.MkdirAll(filepath.Dir(destination), 0o755); err != nil {
		return bundleError(errbuilder.CodeInternal, "failed to create archive directory", err)
	}
	out, err := os.Create(destination)
	if err != nil {
		return bundleError(errbuilder.CodeInternal, "failed to create archive", err)
	}
	writer := zip.NewWriter(out)
	for _, entry := range entries {
		if err := addArchiveEntry(writer, entry); err != nil {
			writer.Close()
			out.Close()
			os.Remove(destination)
			return bundleError(errbuilder.CodeInternal, "failed to add "+entry.source+" to archive", err)
		}
		a.Logger.Debug().Str("file", entry.source).Msg("packaged")
	}
	if err := writer.Close(); err != nil {
		out.Close()
		os.Remove(destination)
		return bundleError(errbuilder.CodeInternal, "failed to finalize archive", err)
	}
	if err := out.Close(); err != nil {
		return bundleError(errbuilder.CodeInternal, "failed to close archive", err)
	}
	a.Logger.Info().Str("bundle", destination).Int("entries", len(entries)).Msg("created bundle")
	return nil
}

func addArchiveEntry(writer *zip.Writer, entry archiveEntry) error {
	file, err := os.Open(entry.source)
	if err != nil {
		return err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entry.name
	header.Method = zip.Deflate
	header.Modified = archiveEpoch
	dest, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(dest, file)
	return err
}

func bundleError(code errbuilder.ErrCode, msg string, cause error) error {
	return types.NewPipelineError(types.ErrBundleWrite, code, msg, cause)
}

var _ ports.ArchivePort = ZipArchiveAdapter{}
