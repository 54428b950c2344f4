package domain

// LoginInput is the transient credential payload for a login attempt.
// Constructed from form state on submission, validated, then discarded —
// never persisted.
type LoginInput struct {
	Username string `form:"username" validate:"min=3"`
	Password string `form:"password" validate:"min=6"`
}

// RegisterInput is the transient payload for a registration attempt.
type RegisterInput struct {
	Email    string `form:"email"    validate:"email"`
	Username string `form:"username" validate:"min=3"`
	Password string `form:"password" validate:"min=6"`
}
