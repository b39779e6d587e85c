package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/DT1234273/Lockdeal/internal/api"
	"github.com/DT1234273/Lockdeal/internal/domain/entity"
	domainerrors "github.com/DT1234273/Lockdeal/internal/domain/errors"
	"github.com/DT1234273/Lockdeal/internal/store"
	"github.com/DT1234273/Lockdeal/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// lifecycleService implements the GroupLifecycleUsecase interface.
type lifecycleService struct {
	st        *store.Store
	groupAPI  *api.GroupAPI
	sellerAPI *api.SellerAPI
	ratingAPI *api.RatingAPI
	validate  *validator.Validate
	logger    *slog.Logger
}

// LifecycleServiceParams holds dependencies for the lifecycle service,
// injected by Fx.
type LifecycleServiceParams struct {
	fx.In

	Store     *store.Store
	GroupAPI  *api.GroupAPI
	SellerAPI *api.SellerAPI
	RatingAPI *api.RatingAPI
	Logger    *slog.Logger
}

// NewLifecycleService is the constructor for lifecycleService.
func NewLifecycleService(params LifecycleServiceParams) usecase.GroupLifecycleUsecase {
	return &lifecycleService{
		st:        params.Store,
		groupAPI:  params.GroupAPI,
		sellerAPI: params.SellerAPI,
		ratingAPI: params.RatingAPI,
		validate:  validator.New(),
		logger:    params.Logger,
	}
}

// Classify maps one group to exactly one lifecycle tab. Order matters:
// pickup wins over everything, then the zero-members acceptance edge
// case, then acceptance, then the lock.
func (srv *lifecycleService) Classify(group *entity.Group) entity.Tab {
	if group == nil {
		return TabOfNothing
	}

	switch {
	case group.IsPickedUp:
		return entity.TabCompleted
	case group.IsAccepted && group.Members == 0:
		// All members confirmed out of the pool; nothing left to hand
		// over, so the deal is done.
		return entity.TabCompleted
	case group.IsAccepted:
		return entity.TabAccepted
	case group.IsLocked():
		return entity.TabLocked
	default:
		return entity.TabActive
	}
}

// TabOfNothing is where nil records land; they render nowhere.
const TabOfNothing = entity.Tab("")

// AvailableTo reports whether a pool surfaces on another seller's
// available tab.
func (srv *lifecycleService) AvailableTo(group *entity.Group, viewerSellerID int) bool {
	if group == nil || group.IsAccepted || group.IsPickedUp {
		return false
	}

	ownerID := group.SellerID
	if group.Product != nil && group.Product.SellerID != 0 {
		ownerID = group.Product.SellerID
	}
	if ownerID == viewerSellerID {
		return false
	}

	return group.MeetsLockThreshold()
}

// StatusLabel returns the cosmetic label for a tab. Locked pools read
// "Locked" on the weekend pickup days and "Unlock" on weekdays. The
// label gates nothing.
func (srv *lifecycleService) StatusLabel(tab entity.Tab, now time.Time) string {
	switch tab {
	case entity.TabActive:
		return "Active"
	case entity.TabLocked:
		if isWeekend(now) {
			return "Locked"
		}

		return "Unlock"
	case entity.TabAccepted:
		return "Accepted"
	case entity.TabCompleted:
		return "Completed"
	case entity.TabAvailable:
		return "Available"
	default:
		return ""
	}
}

func isWeekend(now time.Time) bool {
	day := now.Weekday()

	return day == time.Saturday || day == time.Sunday
}

// MyGroups fetches, enriches, and classifies the caller's groups.
func (srv *lifecycleService) MyGroups(ctx context.Context, now time.Time) ([]usecase.ClassifiedGroup, error) {
	groups, err := srv.groupAPI.GetMyGroups(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidListPayload) {
			// Malformed payload degrades to an empty view plus the
			// error; rendering must never depend on backend shape.
			srv.logger.Error("My-groups payload was not a list", slog.Any("error", err))

			return []usecase.ClassifiedGroup{}, err
		}

		return nil, err
	}

	return srv.annotate(ctx, groups, now), nil
}

// AvailableGroups fetches pools from other sellers the viewer could
// lock and accept.
func (srv *lifecycleService) AvailableGroups(ctx context.Context, viewerSellerID int, now time.Time) ([]usecase.ClassifiedGroup, error) {
	groups, err := srv.groupAPI.GetAvailable(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidListPayload) {
			srv.logger.Error("Available-groups payload was not a list", slog.Any("error", err))

			return []usecase.ClassifiedGroup{}, err
		}

		return nil, err
	}

	annotated := make([]usecase.ClassifiedGroup, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		if !srv.AvailableTo(group, viewerSellerID) {
			continue
		}
		group.Seller = srv.resolveSeller(ctx, group)
		annotated = append(annotated, usecase.ClassifiedGroup{
			Group:       *group,
			Tab:         entity.TabAvailable,
			StatusLabel: srv.StatusLabel(entity.TabAvailable, now),
		})
	}

	return annotated, nil
}

// annotate enriches sellers, applies rated-state, and classifies.
func (srv *lifecycleService) annotate(ctx context.Context, groups []entity.Group, now time.Time) []usecase.ClassifiedGroup {
	rated := srv.st.RatedGroups()

	annotated := make([]usecase.ClassifiedGroup, 0, len(groups))
	for i := range groups {
		group := &groups[i]
		group.Seller = srv.resolveSeller(ctx, group)

		if group.ID != 0 {
			_, group.HasRating = rated[strconv.Itoa(group.ID)]
		}

		tab := srv.Classify(group)
		annotated = append(annotated, usecase.ClassifiedGroup{
			Group:       *group,
			Tab:         tab,
			StatusLabel: srv.StatusLabel(tab, now),
		})
	}

	return annotated
}

// FilterTab selects the groups rendered under one tab.
func (srv *lifecycleService) FilterTab(groups []usecase.ClassifiedGroup, tab entity.Tab) []usecase.ClassifiedGroup {
	filtered := make([]usecase.ClassifiedGroup, 0, len(groups))
	for _, group := range groups {
		if group.Tab == tab {
			filtered = append(filtered, group)
		}
	}

	return filtered
}

// sellerLookup is one strategy for resolving a group's seller record.
// It returns nil when this strategy cannot produce a usable record.
type sellerLookup func(ctx context.Context, group *entity.Group) *entity.SellerProfile

// resolveSeller walks the lookup chain until a usable record appears:
// the denormalized sub-object, a fetch by the group's seller id, a
// fetch by the product's seller id, and finally a synthesized
// placeholder. It never returns nil.
func (srv *lifecycleService) resolveSeller(ctx context.Context, group *entity.Group) *entity.SellerProfile {
	if group.Seller.HasUsableContact() {
		return group.Seller
	}

	chain := []sellerLookup{
		srv.lookupByGroupSeller,
		srv.lookupByProductSeller,
	}

	// Track the best incomplete record seen; a real shop name with a
	// placeholder address still beats a fully synthesized record.
	best := group.Seller
	for _, lookup := range chain {
		found := lookup(ctx, group)
		if found == nil {
			continue
		}
		if found.HasUsableContact() {
			return found
		}
		if best == nil {
			best = found
		}
	}

	if best != nil {
		return best
	}

	return entity.NewPlaceholderSeller(group.SellerID)
}

func (srv *lifecycleService) lookupByGroupSeller(ctx context.Context, group *entity.Group) *entity.SellerProfile {
	if group.SellerID == 0 {
		return nil
	}

	seller, err := srv.sellerAPI.Get(ctx, group.SellerID)
	if err != nil {
		srv.logger.Debug("Seller lookup by group seller id failed", slog.Int("seller_id", group.SellerID), slog.Any("error", err))

		return nil
	}

	return seller
}

func (srv *lifecycleService) lookupByProductSeller(ctx context.Context, group *entity.Group) *entity.SellerProfile {
	if group.Product == nil || group.Product.SellerID == 0 || group.Product.SellerID == group.SellerID {
		return nil
	}

	seller, err := srv.sellerAPI.Get(ctx, group.Product.SellerID)
	if err != nil {
		srv.logger.Debug("Seller lookup by product seller id failed", slog.Int("seller_id", group.Product.SellerID), slog.Any("error", err))

		return nil
	}

	return seller
}

// HasRated reports whether the durable cache records a rating for the
// group. The backend does not expose this, so the cache is
// per-installation rather than per-account.
func (srv *lifecycleService) HasRated(groupID int) bool {
	_, ok := srv.st.RatedGroups()[strconv.Itoa(groupID)]

	return ok
}

// SubmitRating posts the review and records the group as rated.
func (srv *lifecycleService) SubmitRating(ctx context.Context, input usecase.SubmitRatingInput) (*entity.Rating, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetail(err.Error())
	}
	if input.Group == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetail("group is required")
	}
	if input.Group.Product == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetail("group has no product to rate")
	}

	sellerID := ratingSellerID(input.Group)
	if sellerID == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetail("seller information is not available")
	}

	rating, err := srv.ratingAPI.Create(ctx, api.CreateRatingRequest{
		SellerID:  sellerID,
		ProductID: input.Group.Product.ID,
		Score:     input.Score,
		Feedback:  input.Feedback,
	})
	if err != nil {
		srv.logger.Error("Failed to submit rating", slog.Int("group_id", input.Group.ID), slog.Any("error", err))

		return nil, err
	}

	rated := srv.st.RatedGroups()
	rated[strconv.Itoa(input.Group.ID)] = rating.ID
	if err := srv.st.SetRatedGroups(rated); err != nil {
		// The rating exists server-side; losing the local mark only
		// risks offering the rating form again.
		srv.logger.Warn("Failed to persist rated-groups cache", slog.Any("error", err))
	}

	srv.logger.Info("Rating submitted", slog.Int("group_id", input.Group.ID), slog.Int("rating_id", rating.ID))

	return rating, nil
}

// ratingSellerID resolves the seller a review belongs to, in the same
// fallback order the views use: enriched seller record, then the
// group's seller id, then the product's.
func ratingSellerID(group *entity.Group) int {
	if group.Seller != nil && group.Seller.UserID != 0 {
		return group.Seller.UserID
	}
	if group.SellerID != 0 {
		return group.SellerID
	}
	if group.Product != nil {
		return group.Product.SellerID
	}

	return 0
}
