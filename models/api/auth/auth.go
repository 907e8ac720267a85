package authapimodels

import (
	"net/mail"

	"recruit-flow-backend/models"

	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("email has a wrong format")
	}
	if r.Password == "" {
		return errors.New("password is not specified")
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Role         models.UserRole `json:"role"`
}

type RegisterRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	Role      models.UserRole `json:"role"`
}

func (r RegisterRequest) Validate() error {
	_, err := mail.ParseAddress(r.Email)
	if err != nil {
		return errors.New("email has a wrong format")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if r.Role != models.UserRoleAdmin && r.Role != models.UserRolePanel {
		return errors.New("unknown role")
	}
	return nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type PushSubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}

func (r PushSubscribeRequest) Validate() error {
	if r.Endpoint == "" {
		return errors.New("push endpoint is not specified")
	}
	return nil
}
