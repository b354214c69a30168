package service

import (
	"context"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/spendtrack/internal/auth"
	"github.com/mmynk/spendtrack/internal/models"
	"github.com/mmynk/spendtrack/pkg/api"
	"github.com/mmynk/spendtrack/pkg/api/apiconnect"
)

var _ apiconnect.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service. secureCookies sets the
// Secure attribute on session cookies and should be true in production.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, secureCookies bool, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// SignUp creates a new user account and starts a session.
func (s *AuthService) SignUp(ctx context.Context, req *connect.Request[api.SignUpRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.InfoContext(ctx, "SignUp request", "email", req.Msg.Email)

	user, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.Name, req.Msg.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(ctx, s.logger, err)
	}

	res, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "User registered successfully", "user_id", user.ID)
	return res, nil
}

// SignIn authenticates a user and starts a session.
func (s *AuthService) SignIn(ctx context.Context, req *connect.Request[api.SignInRequest]) (*connect.Response[api.AuthResponse], error) {
	s.logger.InfoContext(ctx, "SignIn request", "email", req.Msg.Email)

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.WarnContext(ctx, "SignIn failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(ctx, s.logger, err)
	}

	res, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "User signed in successfully", "user_id", user.ID)
	return res, nil
}

func (s *AuthService) startSession(ctx context.Context, user *models.User) (*connect.Response[api.AuthResponse], error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	res := connect.NewResponse(&api.AuthResponse{User: toAPIUser(user)})
	setCookie(res.Header(), auth.SessionCookie(token, s.jwtManager.TokenDuration(), s.secureCookies))
	return res, nil
}

// SignOut clears the session cookie. Tokens are stateless, so an already
// copied token stays valid until it expires.
func (s *AuthService) SignOut(ctx context.Context, req *connect.Request[api.SignOutRequest]) (*connect.Response[api.SignOutResponse], error) {
	res := connect.NewResponse(&api.SignOutResponse{})
	setCookie(res.Header(), auth.ClearSessionCookie(s.secureCookies))
	return res, nil
}

// GetCurrentUser returns the currently authenticated user's information.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.User], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	out := toAPIUser(user)
	return connect.NewResponse(&out), nil
}

// UpdateProfile changes the caller's name, email or password.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.User], error) {
	user, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.authenticator.UpdateProfile(ctx, user.ID, auth.ProfileUpdate{
		Name:            req.Msg.Name,
		Email:           req.Msg.Email,
		CurrentPassword: req.Msg.CurrentPassword,
		NewPassword:     req.Msg.NewPassword,
	})
	if err != nil {
		return nil, toConnectError(ctx, s.logger, err)
	}

	s.logger.InfoContext(ctx, "Profile updated", "user_id", user.ID)
	out := toAPIUser(updated)
	return connect.NewResponse(&out), nil
}

func setCookie(h http.Header, c *http.Cookie) {
	h.Add("Set-Cookie", c.String())
}

func toAPIUser(u *models.User) api.User {
	return api.User{ID: u.ID, Email: u.Email, Name: u.Name}
}
