package ports

import "polyglotpkg/internal/types"

// ReportPort persists the summary of a packaging run.
type ReportPort interface {
	WriteReport(path string, report types.RunReport) error
}
