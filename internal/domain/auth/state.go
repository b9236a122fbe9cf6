// internal/domain/auth/state.go
package auth

import (
	"context"
	"fmt"

	"github.com/bedjos/storefront/internal/infrastructure/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// Kind enumerates the three mutually exclusive authentication states
type Kind int

const (
	KindAnonymous Kind = iota
	KindCustomer
	KindAdmin
)

func (k Kind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// State is a tagged variant over the authentication states. Anonymous
// carries no token; Customer and Admin carry exactly one. Representing the
// states this way makes "both logged in" unrepresentable.
type State struct {
	Kind  Kind
	Token string
}

// Anonymous is the unauthenticated state
func Anonymous() State {
	return State{Kind: KindAnonymous}
}

// Customer is the customer-authenticated state carrying the upstream token
func Customer(token string) State {
	return State{Kind: KindCustomer, Token: token}
}

// Admin is the admin-authenticated state carrying the upstream token
func Admin(token string) State {
	return State{Kind: KindAdmin, Token: token}
}

// IsAnonymous reports whether no one is logged in
func (s State) IsAnonymous() bool { return s.Kind == KindAnonymous }

// IsCustomer reports whether a customer is logged in
func (s State) IsCustomer() bool { return s.Kind == KindCustomer }

// IsAdmin reports whether an administrator is logged in
func (s State) IsAdmin() bool { return s.Kind == KindAdmin }

// Classify inspects a bearer token's claims to decide which authenticated
// state it represents. The claims are read unverified: validation is the
// upstream API's job, this client only stores and transports tokens. A
// token that cannot be parsed is still carried, as a customer token.
func Classify(token string) State {
	if token == "" {
		return Anonymous()
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Customer(token)
	}

	if isAdmin, ok := claims["is_admin"].(bool); ok && isAdmin {
		return Admin(token)
	}
	if role, ok := claims["role"].(string); ok && role == "admin" {
		return Admin(token)
	}

	return Customer(token)
}

const (
	customerTokenPrefix = "auth:customer_token:"
	adminTokenPrefix    = "auth:admin_token:"
)

// TokenStore persists upstream-issued tokens per session. It enforces the
// exclusivity of the tagged states on every write: storing one kind of
// token removes the other. The cart subsystem reads it only to decide
// whether remote reconciliation should be attempted.
type TokenStore struct {
	kv     storage.KV
	logger *logrus.Logger
}

// NewTokenStore creates a token store over durable storage
func NewTokenStore(kv storage.KV, logger *logrus.Logger) *TokenStore {
	return &TokenStore{kv: kv, logger: logger}
}

// StoreCustomer records a customer token for a session
func (t *TokenStore) StoreCustomer(ctx context.Context, sessionID, token string) error {
	if err := t.kv.Delete(ctx, adminTokenPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear admin token: %w", err)
	}
	if err := t.kv.Set(ctx, customerTokenPrefix+sessionID, token); err != nil {
		return fmt.Errorf("failed to store customer token: %w", err)
	}
	return nil
}

// StoreAdmin records an admin token for a session
func (t *TokenStore) StoreAdmin(ctx context.Context, sessionID, token string) error {
	if err := t.kv.Delete(ctx, customerTokenPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear customer token: %w", err)
	}
	if err := t.kv.Set(ctx, adminTokenPrefix+sessionID, token); err != nil {
		return fmt.Errorf("failed to store admin token: %w", err)
	}
	return nil
}

// Clear removes any stored token for a session, returning it to anonymous
func (t *TokenStore) Clear(ctx context.Context, sessionID string) error {
	if err := t.kv.Delete(ctx, customerTokenPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear customer token: %w", err)
	}
	if err := t.kv.Delete(ctx, adminTokenPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to clear admin token: %w", err)
	}
	return nil
}

// State derives the current authentication state for a session from the
// stored tokens. Storage errors degrade to anonymous: the worst case is a
// re-login, never a crash.
func (t *TokenStore) State(ctx context.Context, sessionID string) State {
	if token, err := t.kv.Get(ctx, adminTokenPrefix+sessionID); err == nil && token != "" {
		return Admin(token)
	} else if err != nil && err != storage.ErrNotFound {
		t.logger.WithError(err).Warn("Failed to read admin token, treating session as anonymous")
	}

	if token, err := t.kv.Get(ctx, customerTokenPrefix+sessionID); err == nil && token != "" {
		return Customer(token)
	} else if err != nil && err != storage.ErrNotFound {
		t.logger.WithError(err).Warn("Failed to read customer token, treating session as anonymous")
	}

	return Anonymous()
}
