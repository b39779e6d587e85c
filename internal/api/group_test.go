package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupAPI_ListEndpoints(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/", func(w http.ResponseWriter, r *http.Request) {
		writeJSONList(w, `[{"id":1,"seller_id":5,"members":3}]`)
	})
	mux.HandleFunc("/api/groups/accepted", func(w http.ResponseWriter, r *http.Request) {
		writeJSONList(w, `[{"id":2,"seller_id":5,"members":4,"is_accepted":true}]`)
	})
	mux.HandleFunc("/api/groups/completed", func(w http.ResponseWriter, r *http.Request) {
		writeJSONList(w, `[{"id":3,"seller_id":5,"is_picked_up":true}]`)
	})

	client, _ := createTestClient(t, mux, "tok")
	groupAPI := NewGroupAPI(client)
	ctx := context.Background()

	all, err := groupAPI.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 1, all[0].ID)

	accepted, err := groupAPI.GetAccepted(ctx)
	require.NoError(t, err)
	require.Len(t, accepted, 1)
	assert.True(t, accepted[0].IsAccepted)

	completed, err := groupAPI.GetCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.True(t, completed[0].IsPickedUp)
}

func TestGroupAPI_ListEndpoints_Errors(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/groups/accepted", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail":"Sellers only"}`))
	})

	client, _ := createTestClient(t, mux, "tok")
	groupAPI := NewGroupAPI(client)

	groups, err := groupAPI.GetAccepted(context.Background())
	require.Error(t, err)
	assert.Nil(t, groups)
}

func writeJSONList(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}
