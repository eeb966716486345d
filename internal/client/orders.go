package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"vendorhub/internal/models"
)

type OrderListOptions struct {
	Page          int
	Limit         int
	OrderStatus   string
	PaymentStatus string
}

type OrderPage struct {
	Data  []models.Order `json:"data"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
}

func (c *Client) ListVendorOrders(ctx context.Context, vendorID string, opts OrderListOptions) (*OrderPage, error) {
	query := url.Values{}
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.OrderStatus != "" {
		query.Set("orderStatus", opts.OrderStatus)
	}
	if opts.PaymentStatus != "" {
		query.Set("paymentStatus", opts.PaymentStatus)
	}

	path := "/order/vendor/" + vendorID
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page OrderPage
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) RecentOrders(ctx context.Context, vendorID string) ([]models.Order, error) {
	var result struct {
		Data []models.Order `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/order/recent-order/"+vendorID, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID, vendorID string) (*models.Order, error) {
	var order models.Order
	path := fmt.Sprintf("/order/%s/vendor/%s", orderID, vendorID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus accepts any workflow value; the server validates
// membership, not transitions.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, vendorID, newStatus string) error {
	path := fmt.Sprintf("/order/status/%s/vendor/%s", orderID, vendorID)
	return c.doJSON(ctx, http.MethodPut, path, map[string]string{"newStatus": newStatus}, nil)
}

func (c *Client) VerifyPayment(ctx context.Context, orderID, newStatus string) error {
	return c.doJSON(ctx, http.MethodPost, "/manually-verify-payment",
		map[string]string{"orderId": orderID, "newStatus": newStatus}, nil)
}

// UpdateSettlementStatus sets the one payout field named by settlementType.
func (c *Client) UpdateSettlementStatus(ctx context.Context, orderID, settlementType, status string) error {
	return c.doJSON(ctx, http.MethodPut, "/admin-update-payment-status/"+orderID,
		map[string]string{"type": settlementType, "status": status}, nil)
}

// DownloadInvoice fetches the rendered PDF for one order.
func (c *Client) DownloadInvoice(ctx context.Context, orderID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/order/"+orderID+"/invoice", nil)
	if err != nil {
		return nil, err
	}
	if token := c.Sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, decodeAPIError(res)
	}
	return io.ReadAll(res.Body)
}
