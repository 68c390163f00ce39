package domain

// MaxUsernameLen bounds usernames at the request boundary.
const MaxUsernameLen = 80

// User represents a registered identity owning a movie list.
type User struct {
	ID       int64
	Username string
}
