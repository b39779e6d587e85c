package api

import (
	"context"
	"fmt"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// AuthAPI wraps the /api/auth endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth endpoint client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// LoginRequest carries login credentials. A successful login only
// triggers the out-of-band OTP; no token is returned yet.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirm_password"`
	Role            entity.Role `json:"role"`
}

// VerifyOTPRequest carries the OTP confirmation.
type VerifyOTPRequest struct {
	Email   string `json:"email"`
	OTPCode string `json:"otp_code"`
}

// VerifyOTPResponse is the session grant issued after OTP confirmation.
type VerifyOTPResponse struct {
	AccessToken string      `json:"access_token"`
	UserID      int         `json:"user_id"`
	Role        entity.Role `json:"role"`
}

// RegisterSellerRequest carries the seller onboarding form.
type RegisterSellerRequest struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address"`
	Contact  string `json:"contact"`
}

// UpdateSellerProfileRequest carries a partial seller profile update.
type UpdateSellerProfileRequest struct {
	Address *string `json:"address,omitempty"`
	Contact *string `json:"contact,omitempty"`
}

// PaySellerFeeResponse acknowledges the onboarding fee payment. The
// seller sub-object is partial (user_id and paid_99 only) and serves as
// the fallback when the follow-up profile refetch fails.
type PaySellerFeeResponse struct {
	Message string                `json:"message"`
	Seller  *entity.SellerProfile `json:"seller,omitempty"`
}

// MessageResponse is the generic acknowledgment envelope.
type MessageResponse struct {
	Message string `json:"message"`
}

// Login posts credentials; on success the backend sends an OTP.
func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := a.client.postJSON(ctx, "/api/auth/login", req, &out, "An error occurred during login"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Register creates an account; on success the backend sends an OTP.
func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*entity.User, error) {
	var out entity.User
	if err := a.client.postJSON(ctx, "/api/auth/register", req, &out, "An error occurred during registration"); err != nil {
		return nil, err
	}

	return &out, nil
}

// ResendOTP re-requests a verification code for the email.
func (a *AuthAPI) ResendOTP(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	req := struct {
		Email string `json:"email"`
	}{Email: email}
	if err := a.client.postJSON(ctx, "/api/auth/resend-otp", req, &out, "An error occurred while resending OTP"); err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyOTP confirms the code and returns the session grant.
func (a *AuthAPI) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyOTPResponse, error) {
	var out VerifyOTPResponse
	if err := a.client.postJSON(ctx, "/api/auth/verify-otp", req, &out, "An error occurred during OTP verification"); err != nil {
		return nil, err
	}

	return &out, nil
}

// Profile fetches the full profile of the authenticated user.
func (a *AuthAPI) Profile(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := a.client.getJSON(ctx, "/api/auth/profile", &out, "An error occurred while fetching user profile"); err != nil {
		return nil, err
	}

	return &out, nil
}

// RegisterSeller creates the seller sub-profile for a user.
func (a *AuthAPI) RegisterSeller(ctx context.Context, userID int, req RegisterSellerRequest) (*entity.SellerProfile, error) {
	var out entity.SellerProfile
	path := fmt.Sprintf("/api/auth/register-seller?user_id=%d", userID)
	if err := a.client.postJSON(ctx, path, req, &out, "An error occurred during seller registration"); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateSellerProfile updates the seller's address and contact.
func (a *AuthAPI) UpdateSellerProfile(ctx context.Context, req UpdateSellerProfileRequest) (*entity.SellerProfile, error) {
	var out entity.SellerProfile
	if err := a.client.putJSON(ctx, "/api/auth/update-seller-profile", req, &out, "An error occurred while updating seller address"); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateCustomerProfileRequest carries a customer address update. The
// deployed backend does not implement this endpoint yet; callers in
// remote sync mode treat a refusal as "keep the local copy".
type UpdateCustomerProfileRequest struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// UpdateCustomerProfile offers the customer's address to the backend.
func (a *AuthAPI) UpdateCustomerProfile(ctx context.Context, req UpdateCustomerProfileRequest) error {
	return a.client.putJSON(ctx, "/api/auth/update-customer-profile", req, nil, "An error occurred while updating customer address")
}

// PaySellerFee confirms the one-time seller onboarding fee.
func (a *AuthAPI) PaySellerFee(ctx context.Context, userID int) (*PaySellerFeeResponse, error) {
	var out PaySellerFeeResponse
	path := fmt.Sprintf("/api/auth/pay-seller-fee/%d", userID)
	if err := a.client.postJSON(ctx, path, nil, &out, "An error occurred during payment. Please try again."); err != nil {
		return nil, err
	}

	return &out, nil
}
