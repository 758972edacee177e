package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrReportNotFound = errors.New("report not found")

	// Access control errors
	ErrAccessDenied = errors.New("access denied to report")

	// Input errors
	ErrInvalidPagination = errors.New("invalid pagination parameters")
)

// Context keys for error values
const (
	ReportIDKey = "report_id"
	UserIDKey   = "user_id"
)
