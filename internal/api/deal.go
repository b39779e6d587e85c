package api

import (
	"context"
	"fmt"
	"time"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// DealAPI wraps the /api/deals endpoints.
type DealAPI struct {
	client *Client
}

// NewDealAPI creates the deal endpoint client.
func NewDealAPI(client *Client) *DealAPI {
	return &DealAPI{client: client}
}

// UpdateDealRequest is the seller-side patch of a pending deal.
type UpdateDealRequest struct {
	Status      *entity.DealStatus `json:"status,omitempty"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// GetAll lists the caller's deals.
func (d *DealAPI) GetAll(ctx context.Context) ([]entity.Deal, error) {
	var out []entity.Deal
	if err := d.client.getJSON(ctx, "/api/deals/", &out, "Failed to fetch deals"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetSellerDeals lists the authenticated seller's deals.
func (d *DealAPI) GetSellerDeals(ctx context.Context) ([]entity.Deal, error) {
	var out []entity.Deal
	if err := d.client.getJSON(ctx, "/api/deals/seller", &out, "Failed to fetch seller deals"); err != nil {
		return nil, err
	}

	return out, nil
}

// Get fetches one deal by id.
func (d *DealAPI) Get(ctx context.Context, id int) (*entity.Deal, error) {
	var out entity.Deal
	if err := d.client.getJSON(ctx, fmt.Sprintf("/api/deals/%d", id), &out, "Failed to fetch deal"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Update patches a pending deal.
func (d *DealAPI) Update(ctx context.Context, id int, req UpdateDealRequest) (*entity.Deal, error) {
	var out entity.Deal
	path := fmt.Sprintf("/api/deals/%d", id)
	if err := d.client.putJSON(ctx, path, req, &out, "Failed to update deal"); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetCustomerProducts lists the products a customer has pending orders
// on, annotated with the customer's quantity and group membership.
func (d *DealAPI) GetCustomerProducts(ctx context.Context, customerID int) ([]entity.Product, error) {
	var out []entity.Product
	path := fmt.Sprintf("/api/deals/customer-products/%d", customerID)
	if err := d.client.getJSON(ctx, path, &out, "Failed to fetch customer products"); err != nil {
		return nil, err
	}

	return out, nil
}

// ConfirmOrder confirms the customer's order for one group membership.
func (d *DealAPI) ConfirmOrder(ctx context.Context, groupMemberID int) (*MessageResponse, error) {
	var out MessageResponse
	path := fmt.Sprintf("/api/deals/confirm-order/%d", groupMemberID)
	if err := d.client.postJSON(ctx, path, nil, &out, "Failed to confirm order"); err != nil {
		return nil, err
	}

	return &out, nil
}
