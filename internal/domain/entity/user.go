// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
// All entities here are client-side copies of server-owned records.
package entity

import (
	"fmt"
	"time"
)

// Placeholder values the backend returns for seller records that were
// auto-provisioned without real contact details. The client must treat
// them as "missing" when deciding whether a lookup succeeded.
const (
	PlaceholderSellerAddress = "Seller address will be available soon"
	PlaceholderSellerContact = "Seller contact will be available soon"
)

// User is the core account entity. It mirrors the backend's profile
// response; the server remains the source of truth and the client only
// caches a copy of it in the local store.
type User struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Role       Role           `json:"role"`
	IsVerified bool           `json:"is_verified"`
	CreatedAt  time.Time      `json:"created_at"`
	Seller     *SellerProfile `json:"seller,omitempty"` // Nil unless the account has completed seller onboarding.

	// CustomerAddress is client-owned state. The backend has no customer
	// address endpoint, so this never round-trips through the server.
	CustomerAddress *CustomerAddress `json:"customerAddress,omitempty"`
}

// IsSeller reports whether the account holds the seller role.
func (u *User) IsSeller() bool {
	return u != nil && u.Role == RoleSeller
}

// SellerProfile holds the seller-specific sub-record of a user.
type SellerProfile struct {
	UserID    int       `json:"user_id"`
	ShopName  string    `json:"shop_name"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	Paid99    bool      `json:"paid_99"` // Onboarding fee flag gating seller-only features.
	CreatedAt time.Time `json:"created_at"`
}

// HasUsableContact reports whether the profile carries real pickup
// details rather than the backend's provisioning placeholders.
func (s *SellerProfile) HasUsableContact() bool {
	if s == nil {
		return false
	}
	if s.Address == "" || s.Address == PlaceholderSellerAddress {
		return false
	}
	if s.Contact == "" || s.Contact == PlaceholderSellerContact {
		return false
	}

	return true
}

// NewPlaceholderSeller synthesizes a seller record for rendering when
// every lookup failed. It keeps downstream code from dealing with a nil
// seller; the placeholder text stays visible, which is accepted.
func NewPlaceholderSeller(sellerID int) *SellerProfile {
	return &SellerProfile{
		UserID:   sellerID,
		ShopName: fmt.Sprintf("Shop #%d", sellerID),
		Address:  PlaceholderSellerAddress,
		Contact:  PlaceholderSellerContact,
	}
}

// CustomerAddress is the pickup contact a customer registers locally.
type CustomerAddress struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}
