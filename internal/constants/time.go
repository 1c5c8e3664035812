package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat is the fixed-width UTC layout used for stored timestamps.
	// Fixed width keeps lexical order equal to chronological order in range queries.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z"
)
