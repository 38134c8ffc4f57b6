// Package catalog reads the university catalog from its configured source.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"

	"studyabroad-workers/internal/common/config"
	"studyabroad-workers/internal/models"
)

var (
	ErrCatalogUnavailable = errors.New("CATALOG_UNAVAILABLE")
	ErrUniversityNotFound = errors.New("UNIVERSITY_NOT_FOUND")
)

// Source lists the catalog in its canonical order. Recommendation ties are
// broken by this order, so implementations must return it consistently.
type Source interface {
	List(ctx context.Context) ([]models.University, error)
}

// Find returns the university with the given id.
func Find(unis []models.University, id string) (models.University, error) {
	for _, u := range unis {
		if u.ID == id {
			return u, nil
		}
	}
	return models.University{}, fmt.Errorf("%w: %s", ErrUniversityNotFound, id)
}

// Get lists src and returns one university by id.
func Get(ctx context.Context, src Source, id string) (models.University, error) {
	unis, err := src.List(ctx)
	if err != nil {
		return models.University{}, err
	}
	return Find(unis, id)
}

// Refresh drops any cached copy of src and lists it again from the backing
// store, returning the fresh catalog.
func Refresh(ctx context.Context, src Source) ([]models.University, error) {
	if c, ok := src.(*Cached); ok {
		if err := c.Invalidate(ctx); err != nil {
			return nil, fmt.Errorf("%w: invalidate cache: %v", ErrCatalogUnavailable, err)
		}
	}
	return src.List(ctx)
}

// New builds the source named by cfg.Source. db and es may be nil when the
// configuration does not need them; rdb enables the read-through cache when
// cfg.CacheTTL is positive.
func New(cfg config.CatalogConfig, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) (Source, error) {
	var src Source
	switch cfg.Source {
	case config.CatalogSourceStatic, "":
		return NewStatic(Default()), nil
	case config.CatalogSourcePostgres:
		if db == nil {
			return nil, fmt.Errorf("catalog source %q needs a database", cfg.Source)
		}
		src = NewPostgres(db, cfg.Table)
	case config.CatalogSourceElasticsearch:
		if es == nil {
			return nil, fmt.Errorf("catalog source %q needs an elasticsearch client", cfg.Source)
		}
		src = NewElasticsearch(es, cfg.Index)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}

	if rdb != nil && cfg.CacheTTL > 0 {
		src = NewCached(src, rdb, time.Duration(cfg.CacheTTL)*time.Second)
	}
	return src, nil
}
