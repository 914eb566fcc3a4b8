package app

import (
	"polyglotpkg/internal/ports"
	"polyglotpkg/internal/types"
)

// PackageRequest holds the options of one packaging run. Relative paths are
// resolved against the current directory.
type PackageRequest struct {
	Workspace        string
	BundlePath       string
	OutDir           string
	TreeDir          string
	SkipTree         bool
	PlatformOverride types.ActionType
	Events           ports.EventSink
	ReportPath       string
}

type PackageResult struct {
	ActionType types.ActionType
	Runtime    types.ActionRuntime
	BundlePath string
	TreeDir    string
	Events     []types.Event
}

// ProjectFormat names one side of a tree conversion.
type ProjectFormat string

const (
	ProjectFormatTree ProjectFormat = "tree"
	ProjectFormatFlat ProjectFormat = "flat"
)

type ConvertRequest struct {
	From   ProjectFormat
	To     ProjectFormat
	Source string
	Dest   string
}
