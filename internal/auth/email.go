package auth

import (
	"net/mail"
)

// validateEmail accepts a bare address ("a@x.com"), rejecting display-name
// forms and anything net/mail cannot parse.
func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}
	return nil
}
