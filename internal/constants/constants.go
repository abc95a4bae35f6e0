package constants

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "workshop_session"

// Session / context keys
const (
	ContextKeyUserID     = "user_id"
	ContextKeyCapability = "capability"
	ContextKeyRequestID  = "request_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const MinPasswordLength = 8

// Reporting: how many trailing month buckets the presentation layer keeps
// when no explicit date range is given.
const (
	IncomeReportMonths    = 12
	DashboardIncomeMonths = 6
)
