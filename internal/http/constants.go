package httpx

// StatusClientClosedRequest is reported when the caller went away mid-request.
const StatusClientClosedRequest = 499

// Error codes emitted by the HTTP layer itself. Service errors use apperrors codes.
const (
	ErrCodeInvalidJSON   = "invalid_json"
	ErrCodeNotSignedIn   = "unauthorized"
	ErrCodeAdminRequired = "forbidden"
)

// Messages shown when a route guard rejects a request.
const (
	MsgSignInFirst   = "Please sign in first"
	MsgAdminRequired = "Admin access required"
	MsgNoBusiness    = "Business not found"
)

// DefaultCookieName names the console session cookie when none is configured.
const DefaultCookieName = "pms_console"
