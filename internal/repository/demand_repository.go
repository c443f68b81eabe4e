package repository

import (
	"context"
	"errors"
	"strings"

	"tutor-board/internal/database"
	"tutor-board/internal/domain/demand"
)

var ErrDemandNotFound = errors.New("demand not found")

// DemandUpsert is one demand together with the page it was parsed from.
type DemandUpsert struct {
	Demand    demand.Demand
	SourceURL string
}

type DemandRepository interface {
	ListDemands(ctx context.Context, limit int) ([]demand.Demand, error)
	FindByID(ctx context.Context, id string) (demand.Demand, error)
	UpsertDemands(ctx context.Context, items []DemandUpsert) (int64, error)
}

type PostgresDemandRepository struct {
	db database.DB
}

func NewPostgresDemandRepository(db database.DB) *PostgresDemandRepository {
	return &PostgresDemandRepository{db: db}
}

const demandColumns = `id, title, city, district, grade, subject, salary_min, salary_max, published_at, description, location`

func (r *PostgresDemandRepository) ListDemands(ctx context.Context, limit int) ([]demand.Demand, error) {
	if r == nil || r.db == nil {
		return nil, database.ErrNilDB
	}
	if limit <= 0 {
		limit = 500
	}
	if limit > 5000 {
		limit = 5000
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+demandColumns+`
		 FROM tutoring_demands
		 ORDER BY inserted_at DESC, id ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]demand.Demand, 0)
	for rows.Next() {
		d, err := scanDemand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDemandRepository) FindByID(ctx context.Context, id string) (demand.Demand, error) {
	if r == nil || r.db == nil {
		return demand.Demand{}, database.ErrNilDB
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return demand.Demand{}, ErrDemandNotFound
	}

	row := r.db.QueryRow(ctx, `SELECT `+demandColumns+` FROM tutoring_demands WHERE id = $1`, id)
	d, err := scanDemand(row)
	if errors.Is(err, database.ErrNoRows) {
		return demand.Demand{}, ErrDemandNotFound
	}
	if err != nil {
		return demand.Demand{}, err
	}
	return d, nil
}

// UpsertDemands writes items in one transaction and returns the number of
// rows inserted or changed.
func (r *PostgresDemandRepository) UpsertDemands(ctx context.Context, items []DemandUpsert) (int64, error) {
	if r == nil || r.db == nil {
		return 0, database.ErrNilDB
	}
	if len(items) == 0 {
		return 0, nil
	}

	var affected int64
	err := database.InTx(ctx, r.db, func(tx database.Tx) error {
		for _, it := range items {
			d := it.Demand
			var source any
			if u := strings.TrimSpace(it.SourceURL); u != "" {
				source = u
			}
			n, err := tx.Exec(ctx,
				`INSERT INTO tutoring_demands (id, title, city, district, grade, subject, salary_min, salary_max, published_at, description, location, source_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
	title = EXCLUDED.title,
	city = EXCLUDED.city,
	district = EXCLUDED.district,
	grade = EXCLUDED.grade,
	subject = EXCLUDED.subject,
	salary_min = EXCLUDED.salary_min,
	salary_max = EXCLUDED.salary_max,
	published_at = EXCLUDED.published_at,
	description = EXCLUDED.description,
	location = EXCLUDED.location,
	source_url = EXCLUDED.source_url,
	updated_at = now()`,
				d.ID, d.Title, d.City, d.District, d.Grade, d.Subject,
				d.SalaryMin, d.SalaryMax, d.CreatedAt, d.Description, d.Location,
				source,
			)
			if err != nil {
				return err
			}
			affected += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func scanDemand(row database.Row) (demand.Demand, error) {
	var d demand.Demand
	err := row.Scan(
		&d.ID, &d.Title, &d.City, &d.District, &d.Grade, &d.Subject,
		&d.SalaryMin, &d.SalaryMax, &d.CreatedAt, &d.Description, &d.Location,
	)
	return d, err
}

var _ DemandRepository = (*PostgresDemandRepository)(nil)
