package ports

import (
	"context"

	"github.com/secureauth/webclient/internal/core/domain"
)

// LoginResult is a complete token/user pair. Login never returns a token
// without its user.
type LoginResult struct {
	Token string
	User  *domain.User
}

// RegisterResult reports a created account. Token and User are both set when
// the gateway issued a token and the follow-up identity fetch succeeded;
// otherwise both are empty and the account exists without a session.
type RegisterResult struct {
	Token string
	User  *domain.User
}

// SessionEstablished reports whether registration yielded a usable session.
func (r RegisterResult) SessionEstablished() bool {
	return r.Token != "" && r.User != nil
}

// AuthGateway is the remote authentication service this client consumes.
// All failures are *domain.AuthError values.
type AuthGateway interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Register(ctx context.Context, email, username, password string) (*RegisterResult, error)
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
