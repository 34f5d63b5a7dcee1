package constants

// RunStatus is the canonical status for rows in the run journal.
type RunStatus string

// Stable values (store these exact strings in the journal).
const (
	RunStatusRunning RunStatus = "RUNNING" // in progress
	RunStatusOCROK   RunStatus = "OCR_OK"  // OCR artifact produced and verified
	RunStatusIndexed RunStatus = "INDEXED" // index record written
	RunStatusSkipped RunStatus = "SKIPPED" // no work needed (e.g. already digital)
	RunStatusFailed  RunStatus = "FAILED"  // terminal failure for this document
)

// Operation names stored alongside run rows.
const (
	OpOCR   = "OCR"
	OpIndex = "INDEX"
)
