package impl

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DT1234273/Lockdeal/internal/api"
	"github.com/DT1234273/Lockdeal/internal/domain/entity"
	domainerrors "github.com/DT1234273/Lockdeal/internal/domain/errors"
	"github.com/DT1234273/Lockdeal/internal/store"
	"github.com/DT1234273/Lockdeal/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestLifecycleService wires a lifecycle service against a fake
// backend and a temp-dir store.
func createTestLifecycleService(t *testing.T, handler http.Handler) (usecase.GroupLifecycleUsecase, *store.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	st, err := store.New(t.TempDir())
	require.NoError(t, err)

	client := api.NewClient(server.URL, 5*time.Second, st, testLogger())

	return NewLifecycleService(LifecycleServiceParams{
		Store:     st,
		GroupAPI:  api.NewGroupAPI(client),
		SellerAPI: api.NewSellerAPI(client),
		RatingAPI: api.NewRatingAPI(client),
		Logger:    testLogger(),
	}), st
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func goodSeller(userID int) *entity.SellerProfile {
	return &entity.SellerProfile{
		UserID:   userID,
		ShopName: "Corner Grocer",
		Address:  "12 Market Lane",
		Contact:  "0912345678",
	}
}

func TestLifecycleService_Classify(t *testing.T) {
	t.Parallel()

	service, _ := createTestLifecycleService(t, http.NewServeMux())
	lockedAt := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		group *entity.Group
		want  entity.Tab
	}{
		{
			name:  "fresh pool is active",
			group: &entity.Group{ID: 1, Members: 3},
			want:  entity.TabActive,
		},
		{
			name:  "locked pool",
			group: &entity.Group{ID: 2, Members: 12, LockedAt: &lockedAt},
			want:  entity.TabLocked,
		},
		{
			name:  "accepted with members waiting",
			group: &entity.Group{ID: 3, Members: 12, LockedAt: &lockedAt, IsAccepted: true},
			want:  entity.TabAccepted,
		},
		{
			name:  "accepted with zero members is completed",
			group: &entity.Group{ID: 4, Members: 0, LockedAt: &lockedAt, IsAccepted: true},
			want:  entity.TabCompleted,
		},
		{
			name:  "picked up wins over everything",
			group: &entity.Group{ID: 5, Members: 12, IsAccepted: true, IsPickedUp: true},
			want:  entity.TabCompleted,
		},
		{
			name:  "picked up without acceptance flag still completed",
			group: &entity.Group{ID: 6, Members: 2, IsPickedUp: true},
			want:  entity.TabCompleted,
		},
		{
			name:  "zero members alone is not completed",
			group: &entity.Group{ID: 7, Members: 0},
			want:  entity.TabActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, service.Classify(tc.group))
		})
	}

	t.Run("nil group renders nowhere", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, TabOfNothing, service.Classify(nil))
		assert.False(t, service.AvailableTo(nil, 1))
	})
}

func TestLifecycleService_AvailableTo(t *testing.T) {
	t.Parallel()

	service, _ := createTestLifecycleService(t, http.NewServeMux())
	const viewer = 7

	testCases := []struct {
		name  string
		group *entity.Group
		want  bool
	}{
		{
			name:  "other seller past value threshold",
			group: &entity.Group{SellerID: 3, TotalPrice: 1500, Members: 2},
			want:  true,
		},
		{
			name:  "other seller past member threshold",
			group: &entity.Group{SellerID: 3, TotalPrice: 200, Members: 10},
			want:  true,
		},
		{
			name:  "exactly at value threshold",
			group: &entity.Group{SellerID: 3, TotalPrice: 1000, Members: 1},
			want:  true,
		},
		{
			name:  "under both thresholds",
			group: &entity.Group{SellerID: 3, TotalPrice: 999.99, Members: 9},
			want:  false,
		},
		{
			name:  "own pool never available",
			group: &entity.Group{SellerID: viewer, TotalPrice: 5000, Members: 20},
			want:  false,
		},
		{
			name:  "ownership resolved through the product",
			group: &entity.Group{SellerID: 0, Product: &entity.Product{SellerID: viewer}, TotalPrice: 5000},
			want:  false,
		},
		{
			name:  "already accepted",
			group: &entity.Group{SellerID: 3, TotalPrice: 1500, IsAccepted: true},
			want:  false,
		},
		{
			name:  "already picked up",
			group: &entity.Group{SellerID: 3, TotalPrice: 1500, IsPickedUp: true},
			want:  false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, service.AvailableTo(tc.group, viewer))
		})
	}
}

func TestLifecycleService_StatusLabel(t *testing.T) {
	t.Parallel()

	service, _ := createTestLifecycleService(t, http.NewServeMux())

	saturday := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "Locked", service.StatusLabel(entity.TabLocked, saturday))
	assert.Equal(t, "Locked", service.StatusLabel(entity.TabLocked, sunday))
	assert.Equal(t, "Unlock", service.StatusLabel(entity.TabLocked, wednesday))

	// The other labels ignore the clock.
	assert.Equal(t, "Active", service.StatusLabel(entity.TabActive, wednesday))
	assert.Equal(t, "Accepted", service.StatusLabel(entity.TabAccepted, saturday))
	assert.Equal(t, "Completed", service.StatusLabel(entity.TabCompleted, sunday))
	assert.Equal(t, "Available", service.StatusLabel(entity.TabAvailable, wednesday))
}

func TestLifecycleService_MyGroups(t *testing.T) {
	t.Parallel()

	lockedAt := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/my-groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Group{
			{ID: 1, SellerID: 5, Members: 3, Seller: goodSeller(5)},
			{ID: 2, SellerID: 6, Members: 12, LockedAt: &lockedAt},
		})
	})
	mux.HandleFunc("/api/seller/6", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, goodSeller(6))
	})

	service, st := createTestLifecycleService(t, mux)
	require.NoError(t, st.SetRatedGroups(store.RatedGroups{"1": 42}))

	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC) // a Monday
	groups, err := service.MyGroups(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, entity.TabActive, groups[0].Tab)
	assert.Equal(t, "Active", groups[0].StatusLabel)
	assert.True(t, groups[0].HasRating)
	assert.Equal(t, "Corner Grocer", groups[0].Seller.ShopName)

	assert.Equal(t, entity.TabLocked, groups[1].Tab)
	assert.Equal(t, "Unlock", groups[1].StatusLabel)
	assert.False(t, groups[1].HasRating)
	require.NotNil(t, groups[1].Seller)
	assert.Equal(t, 6, groups[1].Seller.UserID)
	assert.True(t, groups[1].Seller.HasUsableContact())
}

func TestLifecycleService_MyGroups_NonArrayPayload(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/my-groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"unexpected": "shape"})
	})

	service, _ := createTestLifecycleService(t, mux)

	groups, err := service.MyGroups(context.Background(), time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidListPayload))
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestLifecycleService_AvailableGroups(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/available", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Group{
			{ID: 1, SellerID: 3, TotalPrice: 1500, Seller: goodSeller(3)}, // qualifies
			{ID: 2, SellerID: 7, TotalPrice: 5000, Seller: goodSeller(7)}, // viewer's own
			{ID: 3, SellerID: 4, TotalPrice: 50, Members: 1, Seller: goodSeller(4)}, // under threshold
		})
	})

	service, _ := createTestLifecycleService(t, mux)

	groups, err := service.AvailableGroups(context.Background(), 7, time.Now())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].ID)
	assert.Equal(t, entity.TabAvailable, groups[0].Tab)
	assert.Equal(t, "Available", groups[0].StatusLabel)
}

func TestLifecycleService_SellerEnrichment_FallsBackToProductSeller(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/my-groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Group{
			{ID: 1, SellerID: 5, Product: &entity.Product{ID: 9, SellerID: 8}},
		})
	})
	mux.HandleFunc("/api/seller/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Seller not found"})
	})
	mux.HandleFunc("/api/seller/8", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, goodSeller(8))
	})

	service, _ := createTestLifecycleService(t, mux)

	groups, err := service.MyGroups(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].Seller)
	assert.Equal(t, 8, groups[0].Seller.UserID)
	assert.Equal(t, "Corner Grocer", groups[0].Seller.ShopName)
}

func TestLifecycleService_SellerEnrichment_PlaceholderRecordDoesNotShortCircuit(t *testing.T) {
	t.Parallel()

	// The first lookup succeeds but returns a provisioning placeholder;
	// the chain must keep going and prefer the complete record.
	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/my-groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Group{
			{ID: 1, SellerID: 5, Product: &entity.Product{ID: 9, SellerID: 8}},
		})
	})
	mux.HandleFunc("/api/seller/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, &entity.SellerProfile{
			UserID:   5,
			ShopName: "Half-Provisioned Shop",
			Address:  entity.PlaceholderSellerAddress,
			Contact:  entity.PlaceholderSellerContact,
		})
	})
	mux.HandleFunc("/api/seller/8", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, goodSeller(8))
	})

	service, _ := createTestLifecycleService(t, mux)

	groups, err := service.MyGroups(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 8, groups[0].Seller.UserID)
	assert.True(t, groups[0].Seller.HasUsableContact())
}

func TestLifecycleService_SellerEnrichment_SynthesizesPlaceholder(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/my-groups", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, []entity.Group{
			{ID: 1, SellerID: 5},
		})
	})
	mux.HandleFunc("/api/seller/5", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Seller not found"})
	})

	service, _ := createTestLifecycleService(t, mux)

	groups, err := service.MyGroups(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.NotNil(t, groups[0].Seller)
	assert.Equal(t, "Shop #5", groups[0].Seller.ShopName)
	assert.Equal(t, entity.PlaceholderSellerAddress, groups[0].Seller.Address)
	assert.Equal(t, entity.PlaceholderSellerContact, groups[0].Seller.Contact)
}

func TestLifecycleService_FilterTab(t *testing.T) {
	t.Parallel()

	service, _ := createTestLifecycleService(t, http.NewServeMux())

	groups := []usecase.ClassifiedGroup{
		{Group: entity.Group{ID: 1}, Tab: entity.TabActive},
		{Group: entity.Group{ID: 2}, Tab: entity.TabLocked},
		{Group: entity.Group{ID: 3}, Tab: entity.TabActive},
	}

	active := service.FilterTab(groups, entity.TabActive)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, 3, active[1].ID)

	assert.Empty(t, service.FilterTab(groups, entity.TabCompleted))
}

func TestLifecycleService_SubmitRating(t *testing.T) {
	t.Parallel()

	var posted api.CreateRatingRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/ratings/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		writeJSON(t, w, http.StatusOK, &entity.Rating{ID: 42, SellerID: posted.SellerID, Score: posted.Score})
	})

	service, st := createTestLifecycleService(t, mux)

	group := &entity.Group{
		ID:       10,
		SellerID: 5,
		Product:  &entity.Product{ID: 9, SellerID: 5},
		Seller:   goodSeller(5),
	}

	require.False(t, service.HasRated(10))

	rating, err := service.SubmitRating(context.Background(), usecase.SubmitRatingInput{
		Group:    group,
		Score:    4,
		Feedback: "Fresh produce, quick pickup",
	})
	require.NoError(t, err)
	assert.Equal(t, 42, rating.ID)
	assert.Equal(t, 5, posted.SellerID)
	assert.Equal(t, 9, posted.ProductID)
	assert.Equal(t, 4, posted.Score)

	// The mark survives through a fresh store read.
	assert.True(t, service.HasRated(10))
	assert.Equal(t, 42, st.RatedGroups()["10"])
}

func TestLifecycleService_SubmitRating_SellerIDFallback(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		group *entity.Group
		want  int
	}{
		{
			name: "enriched seller record wins",
			group: &entity.Group{
				ID: 1, SellerID: 2,
				Seller:  &entity.SellerProfile{UserID: 9},
				Product: &entity.Product{ID: 1, SellerID: 3},
			},
			want: 9,
		},
		{
			name: "group seller id next",
			group: &entity.Group{
				ID: 1, SellerID: 2,
				Product: &entity.Product{ID: 1, SellerID: 3},
			},
			want: 2,
		},
		{
			name: "product seller id last",
			group: &entity.Group{
				ID:      1,
				Product: &entity.Product{ID: 1, SellerID: 3},
			},
			want: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, ratingSellerID(tc.group))
		})
	}
}

func TestLifecycleService_SubmitRating_Validation(t *testing.T) {
	t.Parallel()

	service, st := createTestLifecycleService(t, http.NewServeMux())

	_, err := service.SubmitRating(context.Background(), usecase.SubmitRatingInput{
		Group: &entity.Group{ID: 1, SellerID: 2, Product: &entity.Product{ID: 1}},
		Score: 6,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = service.SubmitRating(context.Background(), usecase.SubmitRatingInput{
		Group: &entity.Group{ID: 1, SellerID: 2},
		Score: 3,
	})
	require.Error(t, err)

	// Nothing was marked rated.
	assert.Empty(t, st.RatedGroups())
}
