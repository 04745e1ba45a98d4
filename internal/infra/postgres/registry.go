package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

type registryRow struct {
	bun.BaseModel `bun:"table:quiz_registry,alias:r"`

	QuizID    string    `bun:"quiz_id,pk"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// Registry stores known quiz ids in the quiz_registry table.
type Registry struct {
	db *bun.DB
}

func NewRegistry(db *bun.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) Add(ctx context.Context, quizID string) error {
	row := &registryRow{QuizID: quizID, CreatedAt: time.Now().UTC()}
	if _, err := r.db.NewInsert().Model(row).On("CONFLICT (quiz_id) DO NOTHING").Exec(ctx); err != nil {
		return fmt.Errorf("registry add: %w", err)
	}
	return nil
}

func (r *Registry) Contains(ctx context.Context, quizID string) (bool, error) {
	ok, err := r.db.NewSelect().Model((*registryRow)(nil)).Where("quiz_id = ?", quizID).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("registry contains: %w", err)
	}
	return ok, nil
}

func (r *Registry) Count(ctx context.Context) (int, error) {
	n, err := r.db.NewSelect().Model((*registryRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("registry count: %w", err)
	}
	return n, nil
}

// List returns ids in lexical order.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.NewSelect().Model((*registryRow)(nil)).Column("quiz_id").Order("quiz_id ASC").Scan(ctx, &ids)
	if err != nil {
		return nil, fmt.Errorf("registry list: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
