package api

import (
	"context"
	"fmt"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// RatingAPI wraps the /api/ratings endpoints.
type RatingAPI struct {
	client *Client
}

// NewRatingAPI creates the rating endpoint client.
func NewRatingAPI(client *Client) *RatingAPI {
	return &RatingAPI{client: client}
}

// CreateRatingRequest carries a new review.
type CreateRatingRequest struct {
	SellerID  int    `json:"seller_id"`
	ProductID int    `json:"product_id"`
	Score     int    `json:"score" validate:"min=1,max=5"`
	Feedback  string `json:"feedback,omitempty"`
}

// Create submits a review for a seller's product.
func (r *RatingAPI) Create(ctx context.Context, req CreateRatingRequest) (*entity.Rating, error) {
	var out entity.Rating
	if err := r.client.postJSON(ctx, "/api/ratings/", req, &out, "Failed to create rating"); err != nil {
		return nil, err
	}

	return &out, nil
}

// GetSellerRatings lists the reviews received by a seller.
func (r *RatingAPI) GetSellerRatings(ctx context.Context, sellerID int) ([]entity.Rating, error) {
	var out []entity.Rating
	path := fmt.Sprintf("/api/ratings/seller/%d", sellerID)
	if err := r.client.getJSON(ctx, path, &out, "Failed to fetch seller ratings"); err != nil {
		return nil, err
	}

	return out, nil
}

// GetMyRatings lists the reviews the caller has given.
func (r *RatingAPI) GetMyRatings(ctx context.Context) ([]entity.Rating, error) {
	var out []entity.Rating
	if err := r.client.getJSON(ctx, "/api/ratings/my-ratings", &out, "Failed to fetch your ratings"); err != nil {
		return nil, err
	}

	return out, nil
}
