package db

// Op constants map to engine endpoints for error context.
const (
	OpBulk   = "POST /_bulk"
	OpSearch = "POST /_search"
	OpPing   = "HEAD /"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
