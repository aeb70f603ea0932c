package learnix

import (
	"context"
	"fmt"

	domainauth "github.com/learnix/learnix-portal/internal/domain/auth"
	"github.com/learnix/learnix-portal/internal/ports"
)

var _ ports.Authenticator = (*Client)(nil)

// loginData is the payload inside the login envelope.
type loginData struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	User  struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func (d loginData) result() (ports.LoginResult, error) {
	if d.Token == "" {
		return ports.LoginResult{}, fmt.Errorf("login response carried no token")
	}
	role, err := domainauth.ParseRole(d.User.Role)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("login response role: %w", err)
	}
	return ports.LoginResult{
		Token: d.Token,
		Identity: domainauth.Identity{
			ID:    d.User.ID,
			Name:  d.User.Name,
			Email: d.User.Email,
			Role:  role,
		},
	}, nil
}

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	var data loginData
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &data); err != nil {
		return ports.LoginResult{}, err
	}
	return data.result()
}

// LoginWithGoogle exchanges a verified Google ID token for a bearer token.
func (c *Client) LoginWithGoogle(ctx context.Context, idToken string) (ports.LoginResult, error) {
	var data loginData
	body := map[string]string{"idToken": idToken}
	if err := c.post(ctx, "/api/auth/google/login", body, &data); err != nil {
		return ports.LoginResult{}, err
	}
	return data.result()
}

// Register creates a new account. Students start unapproved and cannot log
// in until an admin accepts the admission.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) error {
	body := map[string]string{
		"name":     in.Name,
		"email":    in.Email,
		"password": in.Password,
		"role":     string(in.Role),
	}
	return c.post(ctx, "/api/auth/register", body, nil)
}

// ForgotPassword asks the backend to mail a one-time code.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.post(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

// VerifyOTP checks a one-time code before allowing a reset.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.post(ctx, "/api/auth/verify-otp", body, nil)
}

// ResetPassword sets a new password using a verified one-time code.
func (c *Client) ResetPassword(ctx context.Context, in ports.ResetPasswordInput) error {
	body := map[string]string{
		"email":       in.Email,
		"otp":         in.OTP,
		"newPassword": in.NewPassword,
	}
	return c.post(ctx, "/api/auth/reset-password", body, nil)
}
