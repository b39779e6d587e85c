package entity

import "time"

// Rating is a customer's 1-5 review of a seller for one product. The
// backend does not report whether a given group has been rated, so the
// client tracks that separately in the rated-groups cache.
type Rating struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	SellerID  int       `json:"seller_id"`
	ProductID *int      `json:"product_id,omitempty"`
	Score     int       `json:"score"`
	Feedback  string    `json:"feedback,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
