package core

import (
	"context"
	"errors"
)

// Identity provider errors. Callers map these to user-facing messages; any
// other error gets a generic one.
var (
	ErrEmailInUse      = errors.New("email already in use")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("wrong password")
)

// Identity is an authenticated principal as issued by the identity provider.
// The ID is the opaque, immutable key the rest of the system hangs user
// records off of.
type Identity struct {
	ID    string
	Email string
}

// IdentityProvider is the external authentication collaborator. The portal
// never stores credentials itself; it only calls this contract.
//
// AuthStateChanges is a stream of the signed-in identity (nil when signed
// out); the returned func unsubscribes and must be called exactly once.
type IdentityProvider interface {
	CreateAccount(ctx context.Context, email, password string) (Identity, error)
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignOut(ctx context.Context) error
	AuthStateChanges() (<-chan *Identity, func())
}
