package apierror

// Error type URIs following RFC 9457 conventions.
// These use a URN scheme for API-internal error types.
const (
	TypeValidation   = "urn:moodloop:error:validation"
	TypeNotFound     = "urn:moodloop:error:not_found"
	TypeBadRequest   = "urn:moodloop:error:bad_request"
	TypeUnauthorized = "urn:moodloop:error:unauthorized"
	TypeInternal     = "urn:moodloop:error:internal"
)

// Common error titles
const (
	TitleValidation   = "Validation Failed"
	TitleNotFound     = "Resource Not Found"
	TitleBadRequest   = "Bad Request"
	TitleUnauthorized = "Unauthorized"
	TitleInternal     = "Internal Server Error"
)
