package client

import (
	"context"
	"net/http"

	"vendorhub/internal/models"
)

func (c *Client) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	var result struct {
		Data []models.FAQ `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/faqs", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) CreateFAQ(ctx context.Context, question, answer string) (*models.FAQ, error) {
	var faq models.FAQ
	body := map[string]string{"question": question, "answer": answer}
	if err := c.doJSON(ctx, http.MethodPost, "/faqs", body, &faq); err != nil {
		return nil, err
	}
	return &faq, nil
}

func (c *Client) UpdateFAQ(ctx context.Context, faqID, question, answer string) error {
	body := map[string]string{"question": question, "answer": answer}
	return c.doJSON(ctx, http.MethodPut, "/faqs/"+faqID, body, nil)
}

func (c *Client) DeleteFAQ(ctx context.Context, faqID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/faqs/"+faqID, nil, nil)
}

func (c *Client) SubmitContact(ctx context.Context, name, email, subject, message string) error {
	body := map[string]string{"name": name, "email": email, "subject": subject, "message": message}
	return c.doJSON(ctx, http.MethodPost, "/contact", body, nil)
}

func (c *Client) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var result struct {
		Data []models.ContactMessage `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/get-contact", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) CreateInquiry(ctx context.Context, name, phone, message string) error {
	body := map[string]string{"name": name, "phone": phone, "message": message}
	return c.doJSON(ctx, http.MethodPost, "/inquiries", body, nil)
}

func (c *Client) ListInquiries(ctx context.Context) ([]models.Inquiry, error) {
	var result struct {
		Data []models.Inquiry `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/inquiries", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) MarkInquiryHandled(ctx context.Context, inquiryID string) error {
	return c.doJSON(ctx, http.MethodPatch, "/inquiries/"+inquiryID, nil, nil)
}

func (c *Client) CreateTicket(ctx context.Context, subject, message string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	body := map[string]string{"subject": subject, "message": message}
	if err := c.doJSON(ctx, http.MethodPost, "/tickets", body, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) ListTickets(ctx context.Context) ([]models.SupportTicket, error) {
	var result struct {
		Data []models.SupportTicket `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/tickets", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) UpdateTicketStatus(ctx context.Context, ticketID, status string) error {
	return c.doJSON(ctx, http.MethodPut, "/tickets/"+ticketID,
		map[string]string{"status": status}, nil)
}

func (c *Client) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	if err := c.doJSON(ctx, http.MethodGet, "/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (c *Client) UpdateSettings(ctx context.Context, fields map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/settings", fields, nil)
}
