package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealAPI_GetAndUpdate(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/deals/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id":9,"group_id":4,"seller_id":5,"status":"pending","total_members":6,"total_amount":1200}`))
		case http.MethodPut:
			var req UpdateDealRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Status)
			assert.Equal(t, entity.DealCompleted, *req.Status)
			require.NotNil(t, req.CompletedAt)

			_, _ = w.Write([]byte(`{"id":9,"group_id":4,"seller_id":5,"status":"completed"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	client, _ := createTestClient(t, mux, "tok")
	dealAPI := NewDealAPI(client)
	ctx := context.Background()

	deal, err := dealAPI.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, entity.DealPending, deal.Status)
	assert.Equal(t, 6, deal.TotalMembers)

	status := entity.DealCompleted
	now := time.Now()
	updated, err := dealAPI.Update(ctx, 9, UpdateDealRequest{Status: &status, CompletedAt: &now})
	require.NoError(t, err)
	assert.Equal(t, entity.DealCompleted, updated.Status)
}

func TestDealAPI_GetCustomerProducts(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/deals/customer-products/11", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"seller_id":5,"name":"Mango","quantity":2,"total_price":99,"group_id":4,"group_member_id":8}]`))
	})

	client, _ := createTestClient(t, mux, "tok")
	dealAPI := NewDealAPI(client)

	products, err := dealAPI.GetCustomerProducts(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].Quantity)
	assert.Equal(t, 4, products[0].GroupID)
	assert.Equal(t, 8, products[0].GroupMemberID)
}
