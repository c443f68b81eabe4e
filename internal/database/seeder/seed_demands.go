package seeder

import (
	"context"

	"tutor-board/internal/database"
	"tutor-board/internal/domain/demand"
)

// DemandSeeder inserts the sample demands, leaving existing ids untouched.
type DemandSeeder struct {
	Demands []demand.Demand
}

func (DemandSeeder) Name() string { return "tutoring_demands" }

func (s DemandSeeder) Run(ctx context.Context, db database.DB) (int64, error) {
	if err := EnsureTableColumns(ctx, db, "tutoring_demands", demandTableColumns...); err != nil {
		return 0, err
	}

	items := s.Demands
	if items == nil {
		items = demand.Fallback()
	}

	var inserted int64
	err := database.InTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			affected, err := tx.Exec(
				ctx,
				`INSERT INTO tutoring_demands (id, title, city, district, grade, subject, salary_min, salary_max, published_at, description, location)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO NOTHING`,
				it.ID,
				it.Title,
				it.City,
				it.District,
				it.Grade,
				it.Subject,
				it.SalaryMin,
				it.SalaryMax,
				it.CreatedAt,
				it.Description,
				it.Location,
			)
			if err != nil {
				return err
			}
			inserted += affected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
