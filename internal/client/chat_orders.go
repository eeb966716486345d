package client

import (
	"context"
	"net/http"

	"vendorhub/internal/models"
)

type ChatOrderItem struct {
	ProductID string  `json:"product,omitempty"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount"`
}

type CreateChatOrderInput struct {
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	OrderMessage  string          `json:"orderMessage"`
	Products      []ChatOrderItem `json:"products,omitempty"`
}

func (c *Client) CreateChatOrder(ctx context.Context, input CreateChatOrderInput) (*models.ChatOrder, error) {
	var order models.ChatOrder
	if err := c.doJSON(ctx, http.MethodPost, "/chat-order", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListVendorChatOrders(ctx context.Context, vendorID string) ([]models.ChatOrder, error) {
	var result struct {
		Data []models.ChatOrder `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/chat-order/vendor/"+vendorID, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) GetChatOrder(ctx context.Context, orderID string) (*models.ChatOrder, error) {
	var order models.ChatOrder
	if err := c.doJSON(ctx, http.MethodGet, "/chat-order/"+orderID, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateChatOrderAmount replaces the product rows; the server recomputes the
// total and returns it.
func (c *Client) UpdateChatOrderAmount(ctx context.Context, orderID string, products []ChatOrderItem) (float64, error) {
	var result struct {
		TotalAmount float64 `json:"totalAmount"`
	}
	body := map[string]interface{}{"orderId": orderID, "products": products}
	if err := c.doJSON(ctx, http.MethodPut, "/chat-order-status-amount", body, &result); err != nil {
		return 0, err
	}
	return result.TotalAmount, nil
}

func (c *Client) UpdateChatOrderStatus(ctx context.Context, orderID, newStatus string) error {
	return c.doJSON(ctx, http.MethodPut, "/chat-order/status/"+orderID+"/vendor",
		map[string]string{"newStatus": newStatus}, nil)
}

func (c *Client) ChatVerifyPayment(ctx context.Context, orderID, newStatus string) error {
	return c.doJSON(ctx, http.MethodPost, "/chat-verify-payment",
		map[string]string{"orderId": orderID, "newStatus": newStatus}, nil)
}

type UpdateChatOrderInput struct {
	OrderID       string          `json:"orderId"`
	OrderMessage  *string         `json:"orderMessage,omitempty"`
	CustomerName  *string         `json:"customerName,omitempty"`
	CustomerPhone *string         `json:"customerPhone,omitempty"`
	Products      []ChatOrderItem `json:"products,omitempty"`
}

func (c *Client) UpdateChatOrder(ctx context.Context, input UpdateChatOrderInput) error {
	return c.doJSON(ctx, http.MethodPut, "/chat/updateChatOrder", input, nil)
}
