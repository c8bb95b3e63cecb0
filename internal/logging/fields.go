package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldMode   = "mode"

	// Partitioning fields.
	FieldBlocks  = "blocks"
	FieldLines   = "lines"
	FieldOffset  = "offset"
	FieldSubtype = "subtype"

	// Conversion fields.
	FieldFiles     = "files"
	FieldConverted = "converted"
	FieldFailed    = "failed"
	FieldJobs      = "jobs"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
