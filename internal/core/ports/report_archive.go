package ports

import "context"

// ReportArchive keeps a copy of every generated report.
type ReportArchive interface {
	Store(ctx context.Context, report *Report) error
}
