package auth

import (
	"context"

	"github.com/mmynk/spendtrack/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// The service layer depends on this rather than on bcrypt directly.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// Returns ErrEmailExists when the email is already registered.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	// Returns ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// UpdateProfile changes name, email or password of an existing user.
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
