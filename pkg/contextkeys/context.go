package contextkeys

// contextKey avoids collisions with other packages' context values
type contextKey string

// DBContextKey - *gorm.DB (pool or transaction) for the current request
const DBContextKey = contextKey("db")

// gin context keys set by the auth middleware
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)
