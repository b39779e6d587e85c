package entity

import "time"

// Product is a seller-owned listing customers can pool purchases on.
type Product struct {
	ID          int       `json:"id"`
	SellerID    int       `json:"seller_id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Populated only on the customer-products view, where the backend
	// annotates each product with the caller's order in it.
	Quantity      int     `json:"quantity,omitempty"`
	TotalPrice    float64 `json:"total_price,omitempty"`
	GroupID       int     `json:"group_id,omitempty"`
	GroupMemberID int     `json:"group_member_id,omitempty"`
}
