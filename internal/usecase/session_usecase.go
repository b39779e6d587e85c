// Package usecase contains the application-specific business rules of
// the client. It orchestrates the API clients and the durable store;
// the delivery layer (CLI) depends only on the interfaces here.
package usecase

import (
	"context"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the credentials posted to start a login. A
// successful login only triggers the out-of-band OTP.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// RegisterInput defines the registration form. Validation mirrors the
// backend's rules so obvious mistakes never leave the client.
type RegisterInput struct {
	Name            string      `validate:"required"`
	Email           string      `validate:"required,email"`
	Password        string      `validate:"required,min=6"`
	ConfirmPassword string      `validate:"required,eqfield=Password"`
	Role            entity.Role `validate:"required"`
}

// VerifyOTPInput defines the OTP confirmation step.
type VerifyOTPInput struct {
	Email   string `validate:"required,email"`
	OTPCode string `validate:"required"`
}

// UpdateAddressInput defines an address/contact form, used for both
// seller and customer address updates.
type UpdateAddressInput struct {
	Address string `validate:"required"`
	Contact string `validate:"required"`
}

// SessionUsecase is the session/profile state machine: anonymous ->
// authenticated-unverified -> authenticated-verified. Every mutating
// operation persists its result to the durable store and returns a
// fresh Session snapshot; callers never share mutable session state.
type SessionUsecase interface {
	// Current returns the latest session snapshot.
	Current() entity.Session

	// Restore rebuilds the session from the durable store at startup.
	// Corrupt stored values and locally-expired tokens yield the
	// anonymous session, never an error that blocks startup.
	Restore(ctx context.Context) entity.Session

	Login(ctx context.Context, input LoginInput) (entity.Session, error)
	Register(ctx context.Context, input RegisterInput) (entity.Session, error)
	VerifyOTP(ctx context.Context, input VerifyOTPInput) (entity.Session, error)
	ResendOTP(ctx context.Context, email string) error
	Logout() (entity.Session, error)

	// RefreshProfile refetches the profile and merges it into the
	// cached user.
	RefreshProfile(ctx context.Context) (entity.Session, error)

	UpdateSellerAddress(ctx context.Context, input UpdateAddressInput) (entity.Session, error)
	UpdateCustomerAddress(ctx context.Context, input UpdateAddressInput) (entity.Session, error)

	// PaySellerFee confirms the onboarding fee. On success the cached
	// paid_99 flag ends up true even when the follow-up profile refetch
	// fails, so the paywall never reappears after a successful payment.
	PaySellerFee(ctx context.Context) (entity.Session, error)
}
