// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DT1234273/Lockdeal/config"
	"github.com/DT1234273/Lockdeal/internal/api"
	"github.com/DT1234273/Lockdeal/internal/domain/entity"
	domainerrors "github.com/DT1234273/Lockdeal/internal/domain/errors"
	"github.com/DT1234273/Lockdeal/internal/infra/auth"
	"github.com/DT1234273/Lockdeal/internal/store"
	"github.com/DT1234273/Lockdeal/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface. The current
// session lives behind a mutex and is only handed out by value, so no
// caller ever holds a reference into shared mutable state.
type sessionService struct {
	addressSync string
	st          *store.Store
	authAPI     *api.AuthAPI
	validate    *validator.Validate
	logger      *slog.Logger

	mu      sync.Mutex
	current entity.Session
}

// SessionServiceParams holds dependencies for the session service,
// injected by Fx.
type SessionServiceParams struct {
	fx.In

	Config  *config.Config
	Store   *store.Store
	AuthAPI *api.AuthAPI
	Logger  *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	addressSync := config.AddressSyncLocal
	if params.Config != nil && params.Config.Session.CustomerAddressSync != "" {
		addressSync = params.Config.Session.CustomerAddressSync
	}

	return &sessionService{
		addressSync: addressSync,
		st:          params.Store,
		authAPI:     params.AuthAPI,
		validate:    validator.New(),
		logger:      params.Logger,
		current:     entity.Anonymous(),
	}
}

// setCurrent swaps in the new snapshot and returns it by value.
func (srv *sessionService) setCurrent(sess entity.Session) entity.Session {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.current = sess

	return sess
}

// Current returns the latest session snapshot.
func (srv *sessionService) Current() entity.Session {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.current
}

func (srv *sessionService) validateInput(input any) error {
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetail(err.Error())
	}

	return nil
}

// Restore rebuilds the session from the durable store at startup.
func (srv *sessionService) Restore(ctx context.Context) entity.Session {
	sess := entity.Anonymous()
	sess.CustomerAddress = srv.st.CustomerAddress()

	token := srv.st.Token()
	if token == "" {
		return srv.setCurrent(sess)
	}

	if auth.IsExpired(token, time.Now()) {
		srv.logger.Info("Stored access token has expired, clearing session")
		if err := srv.st.ClearSession(); err != nil {
			srv.logger.Warn("Failed to clear expired session", slog.Any("error", err))
		}

		return srv.setCurrent(sess)
	}

	user := srv.st.User()
	if user == nil {
		// Token without a readable user record: unusable half-session.
		if err := srv.st.ClearSession(); err != nil {
			srv.logger.Warn("Failed to clear partial session", slog.Any("error", err))
		}

		return srv.setCurrent(sess)
	}

	if user.Role == "" {
		// Older cached users may predate the role field; the token
		// claims carry it.
		if claims, err := auth.ParseClaims(token); err == nil && claims.Role.IsValid() {
			user.Role = claims.Role
		}
	}

	sess.State = entity.SessionVerified
	sess.Token = token
	sess.User = user
	sess = srv.setCurrent(sess)

	// Best-effort profile refresh; the cached copy serves until the
	// backend answers.
	if refreshed, err := srv.RefreshProfile(ctx); err != nil {
		srv.logger.Warn("Failed to refresh profile on restore", slog.Any("error", err))
	} else {
		sess = refreshed
	}

	return sess
}

// Login posts credentials; on success the backend sends an OTP and the
// session waits on the verification step with the email retained.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (entity.Session, error) {
	if err := srv.validateInput(input); err != nil {
		return srv.Current(), err
	}

	srv.logger.Info("Logging in", slog.String("email", input.Email))

	if _, err := srv.authAPI.Login(ctx, api.LoginRequest{Email: input.Email, Password: input.Password}); err != nil {
		srv.logger.Error("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return srv.Current(), err
	}

	sess := srv.Current()
	sess.State = entity.SessionUnverified
	sess.PendingEmail = input.Email

	return srv.setCurrent(sess), nil
}

// Register creates an account and moves to the OTP step.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (entity.Session, error) {
	if err := srv.validateInput(input); err != nil {
		return srv.Current(), err
	}
	if !input.Role.IsValid() {
		return srv.Current(), domainerrors.ErrValidationFailed.WithDetail("role must be customer or seller")
	}

	srv.logger.Info("Registering", slog.String("email", input.Email), slog.String("role", input.Role.String()))

	req := api.RegisterRequest{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
		Role:            input.Role,
	}
	if _, err := srv.authAPI.Register(ctx, req); err != nil {
		srv.logger.Error("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return srv.Current(), err
	}

	sess := srv.Current()
	sess.State = entity.SessionUnverified
	sess.PendingEmail = input.Email

	return srv.setCurrent(sess), nil
}

// ResendOTP re-requests a verification code; no other state changes.
func (srv *sessionService) ResendOTP(ctx context.Context, email string) error {
	_, err := srv.authAPI.ResendOTP(ctx, email)

	return err
}

// VerifyOTP confirms the code, persists the session grant, and fills
// in the full profile. For a brand-new seller whose profile response
// has no seller sub-object, exactly one seller-profile auto-creation
// call repairs the account before the final refetch.
func (srv *sessionService) VerifyOTP(ctx context.Context, input usecase.VerifyOTPInput) (entity.Session, error) {
	if err := srv.validateInput(input); err != nil {
		return srv.Current(), err
	}

	grant, err := srv.authAPI.VerifyOTP(ctx, api.VerifyOTPRequest{Email: input.Email, OTPCode: input.OTPCode})
	if err != nil {
		srv.logger.Error("OTP verification failed", slog.String("email", input.Email), slog.Any("error", err))

		return srv.Current(), err
	}

	// 1. Persist the grant before anything else; a crash after this
	// point leaves a restorable session.
	if err := srv.st.SetToken(grant.AccessToken); err != nil {
		return srv.Current(), errors.Wrap(err, "persist access token")
	}
	user := &entity.User{ID: grant.UserID, Email: input.Email, Role: grant.Role}
	if err := srv.st.SetUser(user); err != nil {
		return srv.Current(), errors.Wrap(err, "persist user")
	}

	sess := entity.Session{
		State:           entity.SessionVerified,
		Token:           grant.AccessToken,
		User:            user,
		CustomerAddress: srv.st.CustomerAddress(),
	}
	sess = srv.setCurrent(sess)

	// 2. Pull the full profile. Failures here do not undo the login.
	profile, err := srv.authAPI.Profile(ctx)
	if err != nil {
		srv.logger.Warn("Failed to fetch profile after OTP verification", slog.Any("error", err))

		return sess, nil
	}
	user = mergeProfile(user, profile)

	// 3. Defensive repair: a seller account without a seller
	// sub-profile cannot use any seller feature. Provision one with
	// placeholder shop data and refetch.
	if grant.Role == entity.RoleSeller && user.Seller == nil {
		srv.logger.Info("Provisioning missing seller profile", slog.Int("user_id", user.ID))

		req := api.RegisterSellerRequest{ShopName: user.Name + "'s Shop"}
		if _, err := srv.authAPI.RegisterSeller(ctx, user.ID, req); err != nil {
			srv.logger.Warn("Failed to provision seller profile", slog.Any("error", err))
		} else if repaired, err := srv.authAPI.Profile(ctx); err == nil {
			user = mergeProfile(user, repaired)
		}
	}

	if err := srv.st.SetUser(user); err != nil {
		srv.logger.Warn("Failed to persist merged profile", slog.Any("error", err))
	}
	sess.User = user

	return srv.setCurrent(sess), nil
}

// Logout clears the stored token and user and resets to anonymous. The
// customer address and rated-groups cache are device state, not session
// state, and survive.
func (srv *sessionService) Logout() (entity.Session, error) {
	if err := srv.st.ClearSession(); err != nil {
		return srv.Current(), errors.Wrap(err, "clear stored session")
	}

	sess := entity.Anonymous()
	sess.CustomerAddress = srv.st.CustomerAddress()

	return srv.setCurrent(sess), nil
}

// RefreshProfile refetches the profile and merges it into the cache.
func (srv *sessionService) RefreshProfile(ctx context.Context) (entity.Session, error) {
	sess := srv.Current()
	if !sess.IsAuthenticated() {
		return sess, domainerrors.ErrNotAuthenticated
	}

	profile, err := srv.authAPI.Profile(ctx)
	if err != nil {
		return srv.Current(), err
	}

	user := mergeProfile(sess.User, profile)
	if err := srv.st.SetUser(user); err != nil {
		srv.logger.Warn("Failed to persist refreshed profile", slog.Any("error", err))
	}

	sess = srv.Current()
	sess.User = user

	return srv.setCurrent(sess), nil
}

// UpdateSellerAddress updates the seller's pickup details server-side
// and refreshes the cached profile.
func (srv *sessionService) UpdateSellerAddress(ctx context.Context, input usecase.UpdateAddressInput) (entity.Session, error) {
	if err := srv.validateInput(input); err != nil {
		return srv.Current(), err
	}

	sess := srv.Current()
	if !sess.IsAuthenticated() {
		return sess, domainerrors.ErrNotAuthenticated
	}
	if !sess.User.IsSeller() {
		return sess, domainerrors.ErrSellerOnly
	}

	req := api.UpdateSellerProfileRequest{Address: &input.Address, Contact: &input.Contact}
	if _, err := srv.authAPI.UpdateSellerProfile(ctx, req); err != nil {
		srv.logger.Error("Failed to update seller address", slog.Any("error", err))

		return srv.Current(), err
	}

	return srv.RefreshProfile(ctx)
}

// UpdateCustomerAddress records the customer's pickup contact. The
// backend has no customer-address endpoint today, so the default
// strategy is store-only; in remote mode the update is additionally
// offered to the backend and degrades to local when refused.
func (srv *sessionService) UpdateCustomerAddress(ctx context.Context, input usecase.UpdateAddressInput) (entity.Session, error) {
	if err := srv.validateInput(input); err != nil {
		return srv.Current(), err
	}

	sess := srv.Current()
	if !sess.IsAuthenticated() {
		return sess, domainerrors.ErrNotAuthenticated
	}

	if srv.addressSync == config.AddressSyncRemote {
		req := api.UpdateCustomerProfileRequest{Address: input.Address, Phone: input.Contact}
		if err := srv.authAPI.UpdateCustomerProfile(ctx, req); err != nil {
			srv.logger.Warn("Customer address sync rejected by backend, keeping local copy", slog.Any("error", err))
		}
	}

	addr := &entity.CustomerAddress{Address: input.Address, Phone: input.Contact}
	if err := srv.st.SetCustomerAddress(addr); err != nil {
		return srv.Current(), errors.Wrap(err, "persist customer address")
	}

	userCopy := *sess.User
	userCopy.CustomerAddress = addr
	user := &userCopy
	if err := srv.st.SetUser(user); err != nil {
		srv.logger.Warn("Failed to persist user with address", slog.Any("error", err))
	}

	sess = srv.Current()
	sess.User = user
	sess.CustomerAddress = addr

	return srv.setCurrent(sess), nil
}

// PaySellerFee confirms the onboarding fee and makes sure the cached
// paid_99 flag cannot regress, whatever happens to the refetch.
func (srv *sessionService) PaySellerFee(ctx context.Context) (entity.Session, error) {
	sess := srv.Current()
	if !sess.IsAuthenticated() {
		return sess, domainerrors.ErrNotAuthenticated
	}
	if !sess.User.IsSeller() {
		return sess, domainerrors.ErrSellerOnly
	}

	resp, err := srv.authAPI.PaySellerFee(ctx, sess.User.ID)
	if err != nil {
		srv.logger.Error("Seller fee payment failed", slog.Int("user_id", sess.User.ID), slog.Any("error", err))

		return srv.Current(), err
	}

	userCopy := *sess.User
	if userCopy.Seller != nil {
		sellerCopy := *userCopy.Seller
		userCopy.Seller = &sellerCopy
	}
	user := &userCopy

	profile, profileErr := srv.authAPI.Profile(ctx)
	switch {
	case profileErr == nil:
		user = mergeProfile(user, profile)
		if user.Seller == nil {
			user.Seller = &entity.SellerProfile{UserID: user.ID}
		}
		// The refetched profile can lag the payment; force the flag.
		user.Seller.Paid99 = true
	case resp.Seller != nil && resp.Seller.Paid99:
		// Fallback: trust the payment response.
		srv.logger.Warn("Profile refetch failed after payment, using payment response", slog.Any("error", profileErr))
		seller := user.Seller
		if seller == nil {
			seller = &entity.SellerProfile{UserID: user.ID}
		}
		seller.Paid99 = true
		user.Seller = seller
	default:
		// Last resort: patch the cached flag so the paywall stays gone.
		srv.logger.Warn("Profile refetch failed after payment, patching cached flag", slog.Any("error", profileErr))
		if user.Seller == nil {
			user.Seller = &entity.SellerProfile{UserID: user.ID}
		}
		user.Seller.Paid99 = true
	}

	if err := srv.st.SetUser(user); err != nil {
		srv.logger.Warn("Failed to persist user after payment", slog.Any("error", err))
	}

	sess = srv.Current()
	sess.User = user

	return srv.setCurrent(sess), nil
}

// mergeProfile overlays a fetched profile onto the cached user,
// keeping the client-owned customer address.
func mergeProfile(cached *entity.User, profile *entity.User) *entity.User {
	if profile == nil {
		return cached
	}

	merged := *profile
	if cached != nil {
		if merged.ID == 0 {
			merged.ID = cached.ID
		}
		if merged.Role == "" {
			merged.Role = cached.Role
		}
		merged.CustomerAddress = cached.CustomerAddress
	}

	return &merged
}
