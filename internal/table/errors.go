package table

import "fmt"

// SourceError reports that an input source could not be fetched or parsed.
// It aborts the pipeline; no output is produced.
type SourceError struct {
	Source string // human-readable source identity (path, URL, "literal")
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// SchemaError reports that a rule referenced a column absent from the table
// at that pipeline stage. Raised before the rule produces any output, so no
// partial mutation is ever visible.
type SchemaError struct {
	Rule   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("rule %s: column %q not found", e.Rule, e.Column)
}

// SinkError reports that the output file could not be written. The sink
// writes atomically, so a SinkError means no file was created or overwritten.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Path, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }
