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

// CategoryInput covers both the global catalog and the vendor-scoped tree;
// the path decides which one the server writes to.
type CategoryInput struct {
	Name     string
	IsActive *bool
	Image    *forms.ImageRef
}

type BannerInput struct {
	Title    string
	Link     string
	IsActive *bool
	Image    *forms.ImageRef
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return c.listCategories(ctx, "/category")
}

func (c *Client) ListVendorCategories(ctx context.Context) ([]models.Category, error) {
	return c.listCategories(ctx, "/vendor-product-category")
}

func (c *Client) listCategories(ctx context.Context, path string) ([]models.Category, error) {
	var result struct {
		Data []models.Category `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) GetCategory(ctx context.Context, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := c.doJSON(ctx, http.MethodGet, "/category/"+categoryID, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) error {
	return c.postCategoryForm(ctx, http.MethodPost, "/category", input)
}

func (c *Client) CreateVendorCategory(ctx context.Context, input CategoryInput) error {
	return c.postCategoryForm(ctx, http.MethodPost, "/vendor-product-category", input)
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID string, input CategoryInput) error {
	return c.postCategoryForm(ctx, http.MethodPut, "/category/"+categoryID, input)
}

func (c *Client) UpdateVendorCategory(ctx context.Context, categoryID string, input CategoryInput) error {
	return c.postCategoryForm(ctx, http.MethodPut, "/vendor-product-category/"+categoryID, input)
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/category/"+categoryID, nil, nil)
}

func (c *Client) DeleteVendorCategory(ctx context.Context, categoryID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/vendor-product-category/"+categoryID, nil, nil)
}

func (c *Client) postCategoryForm(ctx context.Context, method, path string, input CategoryInput) error {
	fields := map[string]string{"name": input.Name}
	if input.IsActive != nil && !*input.IsActive {
		fields["isActive"] = "false"
	}
	body, contentType, err := buildImageForm(fields, input.Image)
	if err != nil {
		return err
	}
	return c.sendMultipart(ctx, method, path, body, contentType)
}

func (c *Client) ListBanners(ctx context.Context) ([]models.Banner, error) {
	var result struct {
		Data []models.Banner `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/banner", nil, &result); err != nil {
		return nil, err
	}
	return result.Data, nil
}

func (c *Client) CreateBanner(ctx context.Context, input BannerInput) error {
	return c.postBannerForm(ctx, http.MethodPost, "/banner", input)
}

func (c *Client) UpdateBanner(ctx context.Context, bannerID string, input BannerInput) error {
	return c.postBannerForm(ctx, http.MethodPut, "/banner/"+bannerID, input)
}

func (c *Client) DeleteBanner(ctx context.Context, bannerID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/banner/"+bannerID, nil, nil)
}

func (c *Client) SetBannerActive(ctx context.Context, bannerID string, active bool) error {
	return c.doJSON(ctx, http.MethodPut, "/banner-active/"+bannerID,
		map[string]bool{"isActive": active}, nil)
}

func (c *Client) postBannerForm(ctx context.Context, method, path string, input BannerInput) error {
	fields := map[string]string{"title": input.Title}
	if input.Link != "" {
		fields["link"] = input.Link
	}
	if input.IsActive != nil && !*input.IsActive {
		fields["isActive"] = "false"
	}
	body, contentType, err := buildImageForm(fields, input.Image)
	if err != nil {
		return err
	}
	return c.sendMultipart(ctx, method, path, body, contentType)
}

// buildImageForm writes the scalar fields plus a single image slot: an
// existing URL goes through as "existingImage", a new file uploads as "image".
func buildImageForm(fields map[string]string, image *forms.ImageRef) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if image != nil {
		if image.IsExisting() {
			if err := writer.WriteField("existingImage", image.URL); err != nil {
				return nil, "", err
			}
		} else {
			part, err := writer.CreateFormFile("image", image.Name)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, image.Data); err != nil {
				return nil, "", err
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}
