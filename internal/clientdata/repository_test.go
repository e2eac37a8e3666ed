package clientdata

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickermind/tickermind/internal/database"
)

type cachedQuote struct {
	Symbol string  `msgpack:"symbol"`
	Price  float64 `msgpack:"price"`
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    "file:clientdata_test?mode=memory&cache=shared",
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, EnsureSchema(db.Conn()))
	return NewRepository(db.Conn())
}

func TestStoreAndGet(t *testing.T) {
	repo := newTestRepo(t)

	in := cachedQuote{Symbol: "RELIANCE.NS", Price: 2870.5}
	require.NoError(t, repo.Store("yahoo_quote", "RELIANCE.NS", in, time.Minute))

	var out cachedQuote
	found, err := repo.Get("yahoo_quote", "RELIANCE.NS", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGet_Expired(t *testing.T) {
	repo := newTestRepo(t)

	in := cachedQuote{Symbol: "TCS.NS", Price: 4100}
	require.NoError(t, repo.Store("yahoo_quote", "TCS.NS", in, -time.Minute))

	var out cachedQuote
	found, err := repo.Get("yahoo_quote", "TCS.NS", &out)
	require.NoError(t, err)
	assert.False(t, found, "expired entries must not be returned as fresh")

	// Stale read still sees the row
	found, err = repo.GetStale("yahoo_quote", "TCS.NS", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGet_Missing(t *testing.T) {
	repo := newTestRepo(t)

	var out cachedQuote
	found, err := repo.Get("yahoo_quote", "NOPE", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_InvalidTable(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Store("not_a_table", "key", cachedQuote{}, time.Minute)
	assert.Error(t, err)
}

func TestDeleteAllExpired(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.Store("yahoo_quote", "fresh", cachedQuote{Symbol: "A"}, time.Hour))
	require.NoError(t, repo.Store("yahoo_quote", "stale", cachedQuote{Symbol: "B"}, -time.Hour))
	require.NoError(t, repo.Store("yahoo_search", "stale", cachedQuote{Symbol: "C"}, -time.Hour))

	results, err := repo.DeleteAllExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), results["yahoo_quote"])
	assert.Equal(t, int64(1), results["yahoo_search"])
	assert.Equal(t, int64(0), results["yahoo_chart"])

	var out cachedQuote
	found, err := repo.GetStale("yahoo_quote", "stale", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCleanupJob(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Store("yahoo_chart", "stale", cachedQuote{Symbol: "D"}, -time.Hour))

	job := NewCleanupJob(repo, zerolog.New(nil).Level(zerolog.Disabled))
	assert.Equal(t, "client_data_cleanup", job.Name())
	require.NoError(t, job.Run())

	var out cachedQuote
	found, err := repo.GetStale("yahoo_chart", "stale", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
