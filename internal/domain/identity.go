package domain

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   string
	Username string
}
