package api

import (
	"context"
	"fmt"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// SellerAPI wraps the public seller lookup endpoint.
type SellerAPI struct {
	client *Client
}

// NewSellerAPI creates the seller endpoint client.
func NewSellerAPI(client *Client) *SellerAPI {
	return &SellerAPI{client: client}
}

// Get fetches one seller's public profile by user id.
func (s *SellerAPI) Get(ctx context.Context, sellerID int) (*entity.SellerProfile, error) {
	var out entity.SellerProfile
	path := fmt.Sprintf("/api/seller/%d", sellerID)
	if err := s.client.getJSON(ctx, path, &out, "Failed to fetch seller information"); err != nil {
		return nil, err
	}

	return &out, nil
}
