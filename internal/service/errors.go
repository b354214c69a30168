package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/auth"
	"github.com/mmynk/spendtrack/internal/middleware"
	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/internal/storage"
	"github.com/mmynk/spendtrack/pkg/money"
)

// errInternal is the only detail callers see for unexpected failures.
var errInternal = errors.New("internal error")

// toConnectError translates domain errors into Connect errors. Anything not
// recognized is logged and reported as a generic internal error.
func toConnectError(ctx context.Context, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	case errors.Is(err, auth.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, auth.ErrEmailExists)
	case errors.Is(err, storage.ErrDuplicate):
		return connect.NewError(connect.CodeAlreadyExists, storage.ErrDuplicate)
	case errors.Is(err, storage.ErrHasDependents):
		return connect.NewError(connect.CodeFailedPrecondition, storage.ErrHasDependents)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	case errors.Is(err, storage.ErrInvalidReference):
		return connect.NewError(connect.CodeInvalidArgument, storage.ErrInvalidReference)
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrEmptyPassword),
		errors.Is(err, auth.ErrPasswordTooLong),
		errors.Is(err, auth.ErrCurrentPassword),
		errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrAmountScale),
		errors.Is(err, money.ErrAmountPositive),
		errors.Is(err, money.ErrAmountRange):
		return connect.NewError(connect.CodeInvalidArgument, err)
	}

	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	logger.ErrorContext(ctx, "unexpected failure", "error", err)
	return connect.NewError(connect.CodeInternal, errInternal)
}

// requireUser returns the session user or an unauthenticated error. The auth
// middleware already rejects anonymous calls; this guards handlers mounted
// without it.
func requireUser(ctx context.Context) (*models.User, error) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return user, nil
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}
