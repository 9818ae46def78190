package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BruksfildServices01/barber-admin/internal/domain/user"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing bearer token")
	ErrUnknownPrincipal   = errors.New("token subject no longer exists")
)

// CredentialStore is the part of the user repository authentication needs.
type CredentialStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByName(ctx context.Context, name string) (*models.User, error)
}

type Authenticator struct {
	store  CredentialStore
	tokens *TokenIssuer
}

func NewAuthenticator(store CredentialStore, tokens *TokenIssuer) *Authenticator {
	return &Authenticator{store: store, tokens: tokens}
}

// Login checks username/password and issues an access token. An unknown name and a
// wrong password both yield ErrInvalidCredentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.store.FindByName(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	ok, err := VerifyPassword(password, u.PasswordSalt, u.PasswordHash)
	if err != nil {
		// Corrupt stored salts are reported like a wrong password.
		return "", ErrInvalidCredentials
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Authenticate resolves the principal behind an Authorization header value.
// The role always comes from the store, never from the token.
func (a *Authenticator) Authenticate(ctx context.Context, authorization string) (Principal, error) {
	raw, err := BearerToken(authorization)
	if err != nil {
		return Principal{}, err
	}

	userID, err := a.tokens.Verify(raw)
	if err != nil {
		return Principal{}, err
	}

	u, err := a.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Principal{}, ErrUnknownPrincipal
		}
		return Principal{}, fmt.Errorf("find user: %w", err)
	}

	return Principal{UserID: u.ID, Role: user.Role(u.Role)}, nil
}

// BearerToken extracts the token from "Bearer <token>".
func BearerToken(authorization string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(authorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrMissingToken
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// IsUnauthenticated reports whether err is a rejection rather than a store failure.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUnknownPrincipal) ||
		errors.Is(err, ErrInvalidCredentials)
}
