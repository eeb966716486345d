package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"vendorhub/internal/forms"
	"vendorhub/internal/models"
)

type CreateDriverInput struct {
	Name          string
	Phone         string
	Email         string
	Address       string
	VehicleType   string
	VehicleNumber string
	LicenseNumber string
	Documents     []forms.ImageRef
}

func (c *Client) CreateDriver(ctx context.Context, input CreateDriverInput) (*models.Driver, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"name":          input.Name,
		"phone":         input.Phone,
		"email":         input.Email,
		"address":       input.Address,
		"vehicleType":   input.VehicleType,
		"vehicleNumber": input.VehicleNumber,
		"licenseNumber": input.LicenseNumber,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}

	for _, doc := range input.Documents {
		part, err := writer.CreateFormFile("documents", doc.Name)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, doc.Data); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/create-driver", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var driver models.Driver
	if err := c.send(req, &driver); err != nil {
		return nil, err
	}
	return &driver, nil
}

func (c *Client) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var result struct {
		Data []models.Driver `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/drivers", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) UpdateDriverStatus(ctx context.Context, driverID, status string) error {
	return c.doJSON(ctx, http.MethodPatch, "/driver/"+driverID+"/status",
		map[string]string{"status": status}, nil)
}
