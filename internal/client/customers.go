package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"vendorhub/internal/models"
)

type CustomerPage struct {
	Data  []models.Customer `json:"data"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

func (c *Client) ListCustomers(ctx context.Context, page, limit int) (*CustomerPage, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	path := "/customers"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result CustomerPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RestrictCustomer surfaces the server's error like RestrictVendor does.
func (c *Client) RestrictCustomer(ctx context.Context, customerID string) error {
	return c.doJSON(ctx, http.MethodPut, "/customers/restrict/"+customerID, nil, nil)
}

func (c *Client) UnrestrictCustomer(ctx context.Context, customerID string) error {
	return c.doJSON(ctx, http.MethodPut, "/customers/unrestrict/"+customerID, nil, nil)
}
