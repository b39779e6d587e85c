package entity

import "time"

// DealStatus is the fulfillment state of a deal. Only the seller moves
// a pending deal, and only while it is pending.
type DealStatus string

const (
	DealPending   DealStatus = "pending"
	DealCompleted DealStatus = "completed"
	DealCancelled DealStatus = "cancelled"
)

// String returns the string representation of the DealStatus.
func (s DealStatus) String() string {
	return string(s)
}

// IsValid checks if the DealStatus is a valid value.
func (s DealStatus) IsValid() bool {
	switch s {
	case DealPending, DealCompleted, DealCancelled:
		return true
	default:
		return false
	}
}

// Deal is the fulfillment record the backend creates once a group is
// accepted, tracked to completion or cancellation.
type Deal struct {
	ID           int        `json:"id"`
	GroupID      int        `json:"group_id"`
	SellerID     int        `json:"seller_id"`
	TotalAmount  float64    `json:"total_amount"`
	TotalMembers int        `json:"total_members"`
	Status       DealStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}
