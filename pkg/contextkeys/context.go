package contextkeys

type ContextKey string

const (
	// UserContextKey holds the authenticated *models.User for the request.
	UserContextKey ContextKey = "current_user"
	// SessionIDContextKey holds the opaque session token for the request.
	SessionIDContextKey ContextKey = "session_id"
)
