package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldOutput   = "output"
	FieldJobs     = "jobs"
	FieldCacheDir = "cache_dir"
	FieldChecks   = "checks"

	// Check fields.
	FieldCheck = "check"
	FieldKind  = "kind"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldIssuesTotal     = "issues_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
