package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldFiles = "files"

	// Case fields.
	FieldCase     = "case"
	FieldExpect   = "expect"
	FieldValid    = "valid"
	FieldOps      = "ops"
	FieldCases    = "cases"
	FieldPassed   = "passed"
	FieldFailed   = "failed"
	FieldDuration = "duration"

	// Replay fields.
	FieldStep   = "step"
	FieldOp     = "op"
	FieldCursor = "cursor"
	FieldText   = "text"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
