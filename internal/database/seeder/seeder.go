package seeder

import (
	"context"

	"tutor-board/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int64, error)
}
