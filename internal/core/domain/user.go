package domain

// User models the authenticated actor as reported by the remote auth gateway.
// ID is an opaque identifier; the gateway owns the canonical record.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
