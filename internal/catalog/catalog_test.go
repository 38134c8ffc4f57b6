package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyabroad-workers/internal/common/config"
	"studyabroad-workers/internal/models"
)

var catalogColumns = []string{"id", "name", "country", "cost_level", "acceptance_chance", "category", "why_fit", "risks", "tuition_fee"}

func TestStatic_ListReturnsCopy(t *testing.T) {
	src := NewStatic(Default())

	first, err := src.List(context.Background())
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "University of Toronto", second[0].Name)
	assert.Len(t, second, 4)
}

func TestFind(t *testing.T) {
	u, err := Find(Default(), "3")
	require.NoError(t, err)
	assert.Equal(t, "York University", u.Name)

	_, err = Find(Default(), "99")
	assert.True(t, errors.Is(err, ErrUniversityNotFound))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- id: "10"
  name: TU Munich
  country: Germany
  costLevel: Low
  acceptanceChance: Medium
  category: Target
  tuitionFee: "$3,000"
`), 0o600))

	unis, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, unis, 1)
	assert.Equal(t, models.LevelMedium, unis[0].AcceptanceChance)
	assert.Equal(t, "$3,000", unis[0].TuitionFee)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, country`).
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("1", "University of Toronto", "Canada", "High", "Low", "Dream", "Top-tier CS", "Competition", "$45,000 - $60,000").
			AddRow("2", "University of Waterloo", "Canada", "Medium", "Medium", "Target", nil, nil, nil))

	unis, err := NewPostgres(db, "universities").List(context.Background())
	require.NoError(t, err)
	require.Len(t, unis, 2)
	assert.Equal(t, models.LevelLow, unis[0].AcceptanceChance)
	assert.Equal(t, models.CategoryDream, unis[0].Category)
	assert.Equal(t, "", unis[1].TuitionFee)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, country`).WillReturnError(errors.New("connection refused"))

	_, err = NewPostgres(db, "").List(context.Background())
	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func newTestES(t *testing.T, status int, body string) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearch_List(t *testing.T) {
	client := newTestES(t, http.StatusOK, `{
		"hits": {"total": {"value": 2}, "hits": [
			{"_source": {"id": "4", "name": "University of Melbourne", "country": "Australia", "acceptanceChance": "Low", "position": 1}},
			{"_source": {"id": "3", "name": "York University", "country": "Canada", "acceptanceChance": "High", "position": 2}}
		]}
	}`)

	unis, err := NewElasticsearch(client, "universities").List(context.Background())
	require.NoError(t, err)
	require.Len(t, unis, 2)
	assert.Equal(t, "4", unis[0].ID)
	assert.Equal(t, models.LevelHigh, unis[1].AcceptanceChance)
}

func TestElasticsearch_IndexMissing(t *testing.T) {
	client := newTestES(t, http.StatusNotFound, `{"error":{"type":"index_not_found_exception"},"status":404}`)

	_, err := NewElasticsearch(client, "nope").List(context.Background())
	assert.True(t, errors.Is(err, ErrCatalogUnavailable))
}

type countingSource struct {
	calls int
	unis  []models.University
	err   error
}

func (c *countingSource) List(context.Context) ([]models.University, error) {
	c.calls++
	return c.unis, c.err
}

func TestCached_ReadThrough(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingSource{unis: Default()[:2]}
	cached := NewCached(inner, rdb, time.Minute)
	ctx := context.Background()

	first, err := cached.List(ctx)
	require.NoError(t, err)
	second, err := cached.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists(cacheKey))

	mr.FastForward(2 * time.Minute)
	_, err = cached.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	require.NoError(t, cached.Invalidate(ctx))
	assert.False(t, mr.Exists(cacheKey))
}

func TestRefresh(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	inner := &countingSource{unis: Default()[:2]}
	cached := NewCached(inner, rdb, time.Hour)
	_, err = cached.List(ctx)
	require.NoError(t, err)

	inner.unis = Default()
	unis, err := Refresh(ctx, cached)
	require.NoError(t, err)
	assert.Len(t, unis, 4)
	assert.Equal(t, 2, inner.calls)

	static, err := Refresh(ctx, NewStatic(Default()))
	require.NoError(t, err)
	assert.Len(t, static, 4)

	mr.Close()
	_, err = Refresh(ctx, cached)
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestCached_SourceErrorIsNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	inner := &countingSource{err: ErrCatalogUnavailable}
	_, err = NewCached(inner, rdb, time.Minute).List(context.Background())

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.False(t, mr.Exists(cacheKey))
}

func TestNew(t *testing.T) {
	src, err := New(config.CatalogConfig{Source: config.CatalogSourceStatic}, nil, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &Static{}, src)

	_, err = New(config.CatalogConfig{Source: config.CatalogSourcePostgres}, nil, nil, nil)
	assert.Error(t, err)

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	src, err = New(config.CatalogConfig{Source: config.CatalogSourcePostgres, CacheTTL: 60}, db, nil, redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	require.NoError(t, err)
	assert.IsType(t, &Cached{}, src)

	_, err = New(config.CatalogConfig{Source: "csv"}, nil, nil, nil)
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	u, err := Get(context.Background(), NewStatic(Default()), "2")
	require.NoError(t, err)
	assert.Equal(t, "University of Waterloo", u.Name)
}
