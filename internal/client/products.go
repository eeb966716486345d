package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"vendorhub/internal/forms"
	"vendorhub/internal/models"
)

type VariationInput struct {
	Attributes []models.Attribute `json:"attributes"`
	Price      float64            `json:"price"`
	Discount   float64            `json:"discount"`
	Quantity   int                `json:"quantity"`
	Images     []string           `json:"images,omitempty"`
}

type CreateProductInput struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category"`
	Tags            []string         `json:"tags,omitempty"`
	IsReturnAllowed bool             `json:"isReturnAllowed"`
	IsVisible       *bool            `json:"isVisible,omitempty"`
	Variations      []VariationInput `json:"variations,omitempty"`
}

type UpdateProductInput struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	IsReturnAllowed *bool     `json:"isReturnAllowed,omitempty"`
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var result struct {
		Data []models.Product `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) ListVendorProducts(ctx context.Context, vendorID string) ([]models.Product, error) {
	var result struct {
		Data []models.Product `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+vendorID, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/single-product/"+productID, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	var product models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, input UpdateProductInput) error {
	return c.doJSON(ctx, http.MethodPut, "/products/"+productID, input, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/products/"+productID, nil, nil)
}

func (c *Client) ToggleProductVisibility(ctx context.Context, productID string) error {
	return c.doJSON(ctx, http.MethodPatch, "/products/"+productID+"/toggle-visibility", nil, nil)
}

// AddVariation posts the variation editor payload: the scalar fields as one
// JSON field, kept existing image URLs as an "existingImages" JSON array, and
// new files appended under "images". The image set may mix both kinds freely.
func (c *Client) AddVariation(ctx context.Context, productID string, input VariationInput, images []forms.ImageRef) error {
	body, contentType, err := buildVariationForm(input, images)
	if err != nil {
		return err
	}
	return c.sendMultipart(ctx, http.MethodPost, "/products/"+productID+"/variations", body, contentType)
}

func (c *Client) UpdateVariation(ctx context.Context, productID, variationID string, input VariationInput, images []forms.ImageRef) error {
	body, contentType, err := buildVariationForm(input, images)
	if err != nil {
		return err
	}
	path := fmt.Sprintf("/products/%s/variations/%s", productID, variationID)
	return c.sendMultipart(ctx, http.MethodPut, path, body, contentType)
}

func (c *Client) DeleteVariation(ctx context.Context, productID, variationID string) error {
	path := fmt.Sprintf("/products/%s/variations/%s", productID, variationID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

func buildVariationForm(input VariationInput, images []forms.ImageRef) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, "", fmt.Errorf("encode variation: %w", err)
	}
	if err := writer.WriteField("variation", string(encoded)); err != nil {
		return nil, "", err
	}

	existing, uploads := forms.PartitionImages(images)
	if len(existing) > 0 {
		kept, err := json.Marshal(existing)
		if err != nil {
			return nil, "", err
		}
		if err := writer.WriteField("existingImages", string(kept)); err != nil {
			return nil, "", err
		}
	}
	for _, upload := range uploads {
		part, err := writer.CreateFormFile("images", upload.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, upload.Data); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

func (c *Client) sendMultipart(ctx context.Context, method, path string, body io.Reader, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.send(req, nil)
}
