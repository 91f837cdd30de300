// Package identity resolves the user behind a request. Authentication itself
// happens upstream; this layer only maps an authenticated user id to an
// application-level role.
package identity

import (
	"context"

	"jewelkart/internal/model"
	"jewelkart/internal/repository"

	"github.com/rs/zerolog"
)

// Provider resolves a user id to a full identity.
type Provider interface {
	Resolve(ctx context.Context, userID string) (model.User, error)
}

// repoProvider looks roles up in the users table.
type repoProvider struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

// NewProvider creates a repository-backed identity provider.
func NewProvider(users repository.UserRepository, logger zerolog.Logger) Provider {
	return &repoProvider{
		users:  users,
		logger: logger.With().Str("component", "identity").Logger(),
	}
}

// Resolve returns the identity for a user id. Users without a record default
// to the customer role rather than failing: a missing row means "never seen
// by the back office", not "unauthenticated".
func (p *repoProvider) Resolve(ctx context.Context, userID string) (model.User, error) {
	user, err := p.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}

	if user == nil {
		p.logger.Debug().Str("user_id", userID).Msg("no user record, defaulting to customer role")
		return model.User{ID: userID, Role: model.RoleUser}, nil
	}

	if user.Role != model.RoleAdmin {
		user.Role = model.RoleUser
	}

	return *user, nil
}

type contextKey struct{}

// WithUser attaches a resolved identity to the context.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFrom extracts the resolved identity from the context.
func UserFrom(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(contextKey{}).(model.User)
	return user, ok
}
