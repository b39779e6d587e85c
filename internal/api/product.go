package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"

	"github.com/pkg/errors"
)

// ProductAPI wraps the /api/product endpoints.
type ProductAPI struct {
	client *Client
}

// NewProductAPI creates the product endpoint client.
func NewProductAPI(client *Client) *ProductAPI {
	return &ProductAPI{client: client}
}

// ProductForm is the multipart create/update payload. Image is optional
// and streamed into the form when present.
type ProductForm struct {
	Name        string
	Price       float64
	Unit        string
	Description string
	ImageName   string
	Image       io.Reader
}

// GetAll lists every product in the marketplace.
func (p *ProductAPI) GetAll(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := p.client.getJSON(ctx, "/api/product/", &out, "Failed to fetch products"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetSellerProducts lists the authenticated seller's own products.
func (p *ProductAPI) GetSellerProducts(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if err := p.client.getJSON(ctx, "/api/product/seller", &out, "Failed to fetch seller products"); err != nil {
		return nil, err
	}

	return out, nil
}

// Get fetches one product by id.
func (p *ProductAPI) Get(ctx context.Context, id int) (*entity.Product, error) {
	var out entity.Product
	if err := p.client.getJSON(ctx, fmt.Sprintf("/api/product/%d", id), &out, "Failed to fetch product"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Create uploads a new product listing.
func (p *ProductAPI) Create(ctx context.Context, form ProductForm) (*entity.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var out entity.Product
	if err := p.client.do(ctx, http.MethodPost, "/api/product/", body, contentType, &out, "Failed to create product"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Update replaces an existing product listing.
func (p *ProductAPI) Update(ctx context.Context, id int, form ProductForm) (*entity.Product, error) {
	body, contentType, err := encodeProductForm(form)
	if err != nil {
		return nil, err
	}

	var out entity.Product
	path := fmt.Sprintf("/api/product/%d", id)
	if err := p.client.do(ctx, http.MethodPut, path, body, contentType, &out, "Failed to update product"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Delete removes a product listing.
func (p *ProductAPI) Delete(ctx context.Context, id int) error {
	return p.client.deleteJSON(ctx, fmt.Sprintf("/api/product/%d", id), nil, "Failed to delete product")
}

// encodeProductForm builds the multipart body the backend's upload
// endpoint expects.
func encodeProductForm(form ProductForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        form.Name,
		"price":       strconv.FormatFloat(form.Price, 'f', -1, 64),
		"unit":        form.Unit,
		"description": form.Description,
	}
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", errors.Wrapf(err, "write form field %s", field)
		}
	}

	if form.Image != nil {
		part, err := writer.CreateFormFile("image", form.ImageName)
		if err != nil {
			return nil, "", errors.Wrap(err, "create image form file")
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return nil, "", errors.Wrap(err, "copy image into form")
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(err, "close multipart writer")
	}

	return &buf, writer.FormDataContentType(), nil
}
