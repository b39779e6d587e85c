package api

import (
	"context"
	"fmt"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// RecommendationAPI wraps the recommendation endpoints.
type RecommendationAPI struct {
	client *Client
}

// NewRecommendationAPI creates the recommendation endpoint client.
func NewRecommendationAPI(client *Client) *RecommendationAPI {
	return &RecommendationAPI{client: client}
}

// GetRecommendedProducts fetches up to limit products picked for the
// caller by the backend's recommender.
func (r *RecommendationAPI) GetRecommendedProducts(ctx context.Context, limit int) ([]entity.Product, error) {
	var out []entity.Product
	path := fmt.Sprintf("/api/recommendations/products/recommended?limit=%d", limit)
	if err := r.client.getJSON(ctx, path, &out, "Failed to fetch recommended products"); err != nil {
		return nil, err
	}

	return out, nil
}
