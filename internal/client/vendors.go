package client

import (
	"context"
	"net/http"

	"vendorhub/internal/models"
)

func (c *Client) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var result struct {
		Data []models.Vendor `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/vendors", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) GetVendor(ctx context.Context, vendorID string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := c.doJSON(ctx, http.MethodGet, "/vendors/admin/"+vendorID, nil, &vendor); err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (c *Client) UpdateVendor(ctx context.Context, vendorID string, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/vendors/admin/"+vendorID, fields, nil)
}

func (c *Client) DeleteVendor(ctx context.Context, vendorID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/vendors/admin/"+vendorID, nil, nil)
}

// RestrictVendor returns the server's error instead of swallowing it, so a
// failed restriction never looks like success to the caller.
func (c *Client) RestrictVendor(ctx context.Context, vendorID string) error {
	return c.doJSON(ctx, http.MethodPut, "/vendors/restrict/"+vendorID, nil, nil)
}

func (c *Client) UnrestrictVendor(ctx context.Context, vendorID string) error {
	return c.doJSON(ctx, http.MethodPut, "/vendors/unrestrict/"+vendorID, nil, nil)
}

func (c *Client) UpdateMyProfile(ctx context.Context, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/vendors/me/profile", fields, nil)
}

// LoginAsVendor mints a vendor-scoped token for an admin and switches the
// session to it.
func (c *Client) LoginAsVendor(ctx context.Context, vendorID string) (*LoginResult, error) {
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/vendors/admin-login-as-vendor/"+vendorID, nil, &result); err != nil {
		return nil, err
	}
	if err := c.Sessions.SetAuthenticated(result.Token, result.User); err != nil {
		return nil, err
	}
	return &result, nil
}
