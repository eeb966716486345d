package client

import (
	"context"
	"net/http"

	"vendorhub/internal/models"
)

type LoginResult struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
	ExpiresIn    int64          `json:"expiresIn"`
	User         *models.Vendor `json:"user"`
}

// Login authenticates and persists the session on success.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var result LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, "/vendors/login", body, &result); err != nil {
		return nil, err
	}
	if err := c.Sessions.SetAuthenticated(result.Token, result.User); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the refresh token server-side and clears the local session.
// The session is cleared even when the revoke call fails.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	apiErr := c.doJSON(ctx, http.MethodPost, "/vendors/logout",
		map[string]string{"refreshToken": refreshToken}, nil)
	if err := c.Sessions.Clear(); err != nil {
		return err
	}
	return apiErr
}

func (c *Client) Me(ctx context.Context) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := c.doJSON(ctx, http.MethodGet, "/vendors/me", nil, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.doJSON(ctx, http.MethodPost, "/vendors/auth/forgot-password",
		map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/vendors/auth/reset-password/"+token,
		map[string]string{"password": newPassword}, nil)
}
