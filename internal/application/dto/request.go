package dto

import (
	"net/mail"
	"strings"
)

// ValidationErrors maps a field name to the reason it was rejected. The HTTP
// layer renders it as a 422 "fail" response.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

const minPasswordLength = 6

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Password string `json:"password"`
}

func (r *CreateUserRequest) Validate() error {
	errs := ValidationErrors{}
	if r.Username == "" {
		errs["username"] = "must not be empty"
	} else if len(r.Username) > 50 {
		errs["username"] = "must be at most 50 characters"
	}
	if r.Email == "" {
		errs["email"] = "must not be empty"
	} else if _, err := mail.ParseAddress(r.Email); err != nil {
		errs["email"] = "must be a valid email address"
	}
	if len(r.Password) < minPasswordLength {
		errs["password"] = "must be at least 6 characters"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePasswordRequest struct {
	Password string `json:"password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if len(r.Password) < minPasswordLength {
		return ValidationErrors{"password": "must be at least 6 characters"}
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	errs := ValidationErrors{}
	if r.Username == "" {
		errs["username"] = "must not be empty"
	}
	if r.Password == "" {
		errs["password"] = "must not be empty"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	if r.RefreshToken == "" {
		return ValidationErrors{"refresh_token": "must not be empty"}
	}
	return nil
}

type LogoutRequest struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

func (r *LogoutRequest) Validate() error {
	errs := ValidationErrors{}
	if r.Username == "" {
		errs["username"] = "must not be empty"
	}
	if r.RefreshToken == "" {
		errs["refresh_token"] = "must not be empty"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
