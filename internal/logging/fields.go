package logging

const (
	// FieldComponent names the subsystem emitting the record.
	FieldComponent = "component"
	// FieldStage names the pipeline stage (toolchain, ingest, transcode, cleanup).
	FieldStage = "stage"
	// FieldRunID correlates every record of a single pipeline run.
	FieldRunID = "run_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint carries an operator-facing next step.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldTrack is the 1-based output ordinal.
	FieldTrack = "track"
	// FieldSource is an input file or URL being processed.
	FieldSource = "source"
	// FieldIndex is the 1-based position of a manifest entry.
	FieldIndex = "index"
)
