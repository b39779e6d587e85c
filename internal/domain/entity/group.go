package entity

import "time"

// Lock thresholds enforced server-side. The client assumes them when
// deciding whether a pool is presentable as ready to accept.
const (
	LockValueThreshold  = 1000.0
	LockMemberThreshold = 10
)

// Group is a product-specific purchase pool. The backend owns every
// transition; the client only reads the reflected flags. Observed
// lifecycle is monotonic: active -> locked -> accepted -> picked up.
type Group struct {
	ID         int            `json:"id"`
	ProductID  int            `json:"product_id"`
	SellerID   int            `json:"seller_id"`
	TotalPrice float64        `json:"total_price"`
	Members    int            `json:"members"`
	CreatedAt  time.Time      `json:"created_at"`
	LockedAt   *time.Time     `json:"locked_at"` // Nil while the pool is still accumulating members.
	IsAccepted bool           `json:"is_accepted"`
	IsPickedUp bool           `json:"is_picked_up"`
	PickedUpAt *time.Time     `json:"picked_up_at,omitempty"`
	Product    *Product       `json:"product,omitempty"`
	Seller     *SellerProfile `json:"seller,omitempty"` // Denormalized by the backend, sometimes incomplete.

	// Per-caller annotations on the my-groups view.
	Quantity       int     `json:"quantity,omitempty"`
	UserTotalPrice float64 `json:"user_total_price,omitempty"`

	// HasRating is derived client-side from the rated-groups cache and
	// never sent to the backend.
	HasRating bool `json:"-"`
}

// MeetsLockThreshold reports whether the pool has crossed the value or
// membership bar that makes it eligible for locking and acceptance.
func (g *Group) MeetsLockThreshold() bool {
	return g.TotalPrice >= LockValueThreshold || g.Members >= LockMemberThreshold
}

// IsLocked reports whether the backend has frozen the pool.
func (g *Group) IsLocked() bool {
	return g.LockedAt != nil
}

// Tab is the lifecycle bucket a group renders under. Every group
// classifies into exactly one tab; "available" is relative to a viewing
// seller and computed separately.
type Tab string

const (
	TabActive    Tab = "active"
	TabLocked    Tab = "locked"
	TabAccepted  Tab = "accepted"
	TabCompleted Tab = "completed"
	TabAvailable Tab = "available"
)

// String returns the string representation of the Tab.
func (t Tab) String() string {
	return string(t)
}

// IsValid checks if the Tab is a valid value.
func (t Tab) IsValid() bool {
	switch t {
	case TabActive, TabLocked, TabAccepted, TabCompleted, TabAvailable:
		return true
	default:
		return false
	}
}
