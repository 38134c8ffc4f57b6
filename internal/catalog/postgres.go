// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"studyabroad-workers/internal/models"
)

// Postgres reads the catalog from a table ordered by its position column.
type Postgres struct {
	db    *sql.DB
	query string
}

func NewPostgres(db *sql.DB, table string) *Postgres {
	if table == "" {
		table = "universities"
	}
	return &Postgres{
		db: db,
		query: fmt.Sprintf(`
		SELECT id, name, country, cost_level, acceptance_chance, category, why_fit, risks, tuition_fee
		FROM %s ORDER BY position, id`, pq.QuoteIdentifier(table)),
	}
}

func (p *Postgres) List(ctx context.Context) ([]models.University, error) {
	rows, err := p.db.QueryContext(ctx, p.query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var out []models.University
	for rows.Next() {
		var u models.University
		var whyFit, risks, tuition sql.NullString
		if err := rows.Scan(&u.ID, &u.Name, &u.Country, &u.CostLevel, &u.AcceptanceChance,
			&u.Category, &whyFit, &risks, &tuition); err != nil {
			return nil, fmt.Errorf("%w: scan: %v", ErrCatalogUnavailable, err)
		}
		u.WhyFit, u.Risks, u.TuitionFee = whyFit.String, risks.String, tuition.String
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return out, nil
}
