package api

// User is the public view of an account. The password hash never leaves the server.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

func (r *SignUpRequest) Validate() error {
	var errs fieldErrors
	errs.required("email", r.Email)
	if r.Password == "" {
		errs.add("password", "is required")
	}
	return errs.err()
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate() error {
	var errs fieldErrors
	errs.required("email", r.Email)
	if r.Password == "" {
		errs.add("password", "is required")
	}
	return errs.err()
}

// AuthResponse is returned by SignUp and SignIn alongside the session cookie.
type AuthResponse struct {
	User User `json:"user"`
}

type SignOutRequest struct{}

func (*SignOutRequest) Validate() error { return nil }

type SignOutResponse struct{}

type GetCurrentUserRequest struct{}

func (*GetCurrentUserRequest) Validate() error { return nil }

// UpdateProfileRequest changes the caller's own profile. Omitted fields are
// left unchanged; newPassword requires currentPassword.
type UpdateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	CurrentPassword string  `json:"currentPassword,omitempty"`
	NewPassword     string  `json:"newPassword,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs fieldErrors
	if r.Email != nil {
		errs.required("email", *r.Email)
	}
	if r.NewPassword != "" && r.CurrentPassword == "" {
		errs.add("currentPassword", "is required to change the password")
	}
	return errs.err()
}
