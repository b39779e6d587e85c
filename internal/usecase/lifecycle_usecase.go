package usecase

import (
	"context"
	"time"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"
)

// ClassifiedGroup is a raw group record annotated with everything the
// presentation layer needs: its lifecycle tab, its display label, and
// the enriched seller sub-object (never nil after classification).
type ClassifiedGroup struct {
	entity.Group

	Tab         entity.Tab
	StatusLabel string
}

// SubmitRatingInput defines a review submission for a completed group.
type SubmitRatingInput struct {
	Group    *entity.Group
	Score    int    `validate:"required,min=1,max=5"`
	Feedback string `validate:"max=1000"`
}

// GroupLifecycleUsecase reconstructs the group lifecycle state the
// backend owns but does not expose directly: which tab each pool
// renders under, whether its seller record is usable, and whether the
// current user has already rated it.
type GroupLifecycleUsecase interface {
	// Classify maps one group to exactly one tab. Pure function of
	// (locked_at, is_accepted, is_picked_up, members); nil-safe.
	Classify(group *entity.Group) entity.Tab

	// AvailableTo reports whether a pool should surface on another
	// seller's available tab: not accepted, owned by someone else, and
	// past the lock threshold.
	AvailableTo(group *entity.Group, viewerSellerID int) bool

	// StatusLabel returns the cosmetic label for a tab at the given
	// time; locked pools read "Locked" on weekends and "Unlock"
	// otherwise.
	StatusLabel(tab entity.Tab, now time.Time) string

	// MyGroups fetches, enriches, and classifies the caller's groups.
	// A malformed (non-array) payload yields an empty slice together
	// with the error, never a panic.
	MyGroups(ctx context.Context, now time.Time) ([]ClassifiedGroup, error)

	// AvailableGroups fetches pools from other sellers that the viewer
	// could lock and accept.
	AvailableGroups(ctx context.Context, viewerSellerID int, now time.Time) ([]ClassifiedGroup, error)

	// FilterTab selects the groups rendered under one tab.
	FilterTab(groups []ClassifiedGroup, tab entity.Tab) []ClassifiedGroup

	// HasRated reports whether this installation already rated the
	// group, from the durable rated-groups cache.
	HasRated(groupID int) bool

	// SubmitRating posts the review and records the group in the
	// rated-groups cache so it classifies as rated from then on.
	SubmitRating(ctx context.Context, input SubmitRatingInput) (*entity.Rating, error)
}
