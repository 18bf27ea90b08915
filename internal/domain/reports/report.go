package reports

import "context"

// Report is a uniform tabular artifact ready for export: a header, data rows,
// and an optional key/value summary block appended after the table.
type Report struct {
	Name    string
	Columns []string
	Rows    [][]string
	Summary [][]string
}

// Sink persists a report and returns a durable handle (a path or identifier).
// Artifacts are immutable: regenerating a report produces a new handle and
// never touches a prior one.
type Sink interface {
	Write(ctx context.Context, r Report) (string, error)
}

// Artifact identifies one generated report.
type Artifact struct {
	ID       string `json:"artifact_id"`
	Filename string `json:"filename"`
}
