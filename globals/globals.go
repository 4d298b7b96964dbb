package globals

type contextKey string

const (
	// UserIDKey carries the authenticated personnel id (hex) on the request context.
	UserIDKey = contextKey("userId")
	// UserRoleKey carries the authenticated personnel role on the request context.
	UserRoleKey = contextKey("userRole")
)
