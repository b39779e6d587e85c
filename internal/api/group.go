package api

import (
	"context"
	"fmt"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// GroupAPI wraps the /api/groups endpoints.
type GroupAPI struct {
	client *Client
}

// NewGroupAPI creates the group endpoint client.
func NewGroupAPI(client *Client) *GroupAPI {
	return &GroupAPI{client: client}
}

// GetAll lists every group visible to the caller.
func (g *GroupAPI) GetAll(ctx context.Context) ([]entity.Group, error) {
	var out []entity.Group
	if err := g.client.getJSON(ctx, "/api/groups/", &out, "Failed to fetch groups"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetMyGroups lists the groups the caller belongs to (customer) or
// owns (seller).
func (g *GroupAPI) GetMyGroups(ctx context.Context) ([]entity.Group, error) {
	var out []entity.Group
	if err := g.client.getJSON(ctx, "/api/groups/my-groups", &out, "Failed to fetch your groups"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetAvailable lists other sellers' pools that meet the lock threshold.
func (g *GroupAPI) GetAvailable(ctx context.Context) ([]entity.Group, error) {
	var out []entity.Group
	if err := g.client.getJSON(ctx, "/api/groups/available", &out, "Failed to fetch available groups"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetAccepted lists the seller's accepted, not yet picked up pools.
func (g *GroupAPI) GetAccepted(ctx context.Context) ([]entity.Group, error) {
	var out []entity.Group
	if err := g.client.getJSON(ctx, "/api/groups/accepted", &out, "Failed to fetch accepted groups"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetCompleted lists picked-up pools.
func (g *GroupAPI) GetCompleted(ctx context.Context) ([]entity.Group, error) {
	var out []entity.Group
	if err := g.client.getJSON(ctx, "/api/groups/completed", &out, "Failed to fetch completed groups"); err != nil {
		return nil, err
	}

	return out, nil
}

// Get fetches one group by id.
func (g *GroupAPI) Get(ctx context.Context, id int) (*entity.Group, error) {
	var out entity.Group
	if err := g.client.getJSON(ctx, fmt.Sprintf("/api/groups/%d", id), &out, "Failed to fetch group"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Create opens a new purchase pool for a product.
func (g *GroupAPI) Create(ctx context.Context, productID int) (*entity.Group, error) {
	req := struct {
		ProductID int `json:"product_id"`
	}{ProductID: productID}

	var out entity.Group
	if err := g.client.postJSON(ctx, "/api/groups/", req, &out, "Failed to create group"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Join adds the caller to a pool with the given quantity.
func (g *GroupAPI) Join(ctx context.Context, groupID, quantity int) (*MessageResponse, error) {
	req := struct {
		GroupID  int `json:"group_id"`
		Quantity int `json:"quantity"`
	}{GroupID: groupID, Quantity: quantity}

	var out MessageResponse
	if err := g.client.postJSON(ctx, "/api/groups/join", req, &out, "Failed to join group"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Lock asks the backend to freeze the pool's membership and total.
func (g *GroupAPI) Lock(ctx context.Context, groupID int) (*MessageResponse, error) {
	var out MessageResponse
	path := fmt.Sprintf("/api/groups/lock/%d", groupID)
	if err := g.client.postJSON(ctx, path, nil, &out, "Failed to lock group"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Accept commits the seller to fulfilling the pool, locking it first if
// the backend has not already.
func (g *GroupAPI) Accept(ctx context.Context, groupID int) (*MessageResponse, error) {
	var out MessageResponse
	path := fmt.Sprintf("/api/groups/lock-and-accept/%d", groupID)
	if err := g.client.postJSON(ctx, path, nil, &out, "Failed to accept group"); err != nil {
		return nil, err
	}

	return &out, nil
}

// SendDistributionOTP asks the backend to issue the handoff code for a
// pool's members.
func (g *GroupAPI) SendDistributionOTP(ctx context.Context, groupID int) (*MessageResponse, error) {
	var out MessageResponse
	path := fmt.Sprintf("/api/groups/send-distribution-otp/%d", groupID)
	if err := g.client.postJSON(ctx, path, nil, &out, "Failed to send distribution OTP"); err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyDistributionOTP confirms the handoff code at pickup.
func (g *GroupAPI) VerifyDistributionOTP(ctx context.Context, groupID int, otp string) (*MessageResponse, error) {
	req := struct {
		GroupID int    `json:"group_id"`
		OTP     string `json:"otp"`
	}{GroupID: groupID, OTP: otp}

	var out MessageResponse
	if err := g.client.postJSON(ctx, "/api/groups/verify-distribution-otp", req, &out, "Failed to verify distribution OTP"); err != nil {
		return nil, err
	}

	return &out, nil
}
