package constants

const (
	// DateLayout is the only accepted due date format.
	DateLayout = "2006-01-02"

	// TimestampLayout is how created_at and done_at are written to the store.
	TimestampLayout = "2006-01-02T15:04:05"
)
