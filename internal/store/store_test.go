package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DT1234273/Lockdeal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := New(t.TempDir())
	require.NoError(t, err)

	return st
}

func TestStore_TokenRoundTrip(t *testing.T) {
	t.Parallel()

	st := createTestStore(t)

	assert.Empty(t, st.Token())
	require.NoError(t, st.SetToken("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", st.Token())
}

func TestStore_UserRoundTrip(t *testing.T) {
	t.Parallel()

	st := createTestStore(t)

	assert.Nil(t, st.User())

	user := &entity.User{
		ID: 11, Name: "Amy", Email: "amy@example.com", Role: entity.RoleCustomer,
		Seller: &entity.SellerProfile{UserID: 11, ShopName: "Amy's Shop", Paid99: true},
	}
	require.NoError(t, st.SetUser(user))

	got := st.User()
	require.NotNil(t, got)
	assert.Equal(t, "Amy", got.Name)
	require.NotNil(t, got.Seller)
	assert.True(t, got.Seller.Paid99)
}

func TestStore_CorruptFileReadsAsAbsent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	st, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratedGroups.json"), []byte("[1,2,3]"), 0o600))

	assert.Nil(t, st.User())
	// Corrupt cache still yields a usable empty map.
	rated := st.RatedGroups()
	assert.NotNil(t, rated)
	assert.Empty(t, rated)
}

func TestStore_RatedGroups(t *testing.T) {
	t.Parallel()

	st := createTestStore(t)

	rated := st.RatedGroups()
	assert.Empty(t, rated)

	rated["17"] = 3
	require.NoError(t, st.SetRatedGroups(rated))

	again := st.RatedGroups()
	assert.Equal(t, RatedGroups{"17": 3}, again)
}

func TestStore_ClearSession(t *testing.T) {
	t.Parallel()

	st := createTestStore(t)

	require.NoError(t, st.SetToken("tok"))
	require.NoError(t, st.SetUser(&entity.User{ID: 1}))
	require.NoError(t, st.SetCustomerAddress(&entity.CustomerAddress{Address: "a", Phone: "p"}))
	require.NoError(t, st.SetRatedGroups(RatedGroups{"1": 1}))

	require.NoError(t, st.ClearSession())
	// Clearing twice is harmless.
	require.NoError(t, st.ClearSession())

	assert.Empty(t, st.Token())
	assert.Nil(t, st.User())
	assert.NotNil(t, st.CustomerAddress())
	assert.Equal(t, RatedGroups{"1": 1}, st.RatedGroups())
}

func TestStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	st, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, st.SetToken("tok"))

	reopened, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, "tok", reopened.Token())
}
