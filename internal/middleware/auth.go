package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/authn"
	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/auth"
	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
	"github.com/mmynk/spendtrack/pkg/api"
)

// UserLookup loads the user named by a session token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// ResolveUser returns the user identified by the request's session cookie.
// A missing, malformed or expired token, or one naming a user that no longer
// exists, yields (nil, nil). Only store failures return an error.
func ResolveUser(ctx context.Context, r *http.Request, tokens *auth.JWTManager, users UserLookup) (*models.User, error) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		return nil, nil
	}
	claims, err := tokens.Validate(token)
	if err != nil {
		slog.DebugContext(ctx, "ignoring session token", "error", err)
		return nil, nil
	}
	user, err := users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.DebugContext(ctx, "session names unknown user", "user_id", claims.UserID)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// NewAuthMiddleware returns HTTP middleware that resolves the session user for
// every request. Requests without a user are rejected as unauthenticated
// before the body is read, except for api.PublicProcedures.
func NewAuthMiddleware(tokens *auth.JWTManager, users UserLookup, opts ...connect.HandlerOption) *authn.Middleware {
	return authn.NewMiddleware(func(ctx context.Context, r *http.Request) (any, error) {
		user, err := ResolveUser(ctx, r, tokens, users)
		if err != nil {
			slog.ErrorContext(ctx, "failed to resolve session user", "error", err)
			return nil, connect.NewError(connect.CodeInternal, errors.New("internal error"))
		}
		if user != nil {
			return user, nil
		}
		if api.PublicProcedures[r.URL.Path] {
			return nil, nil
		}
		return nil, authn.Errorf("%s", auth.ErrMissingToken)
	}, opts...)
}

// CurrentUser returns the authenticated user stored by the auth middleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := authn.GetInfo(ctx).(*models.User)
	return user, ok && user != nil
}

// GetUserID returns the authenticated user's ID, or "" when anonymous.
func GetUserID(ctx context.Context) string {
	if user, ok := CurrentUser(ctx); ok {
		return user.ID
	}
	return ""
}

// WithUser stores user in ctx the way the auth middleware does. Intended for tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return authn.SetInfo(ctx, user)
}
