package repository

import (
	"context"

	"courseapi/internal/domain"
)

// CourseRepository exposes persistence operations for Course records.
type CourseRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, course *domain.Course) (int64, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Course, error)
	List(ctx context.Context) ([]domain.Course, error)
}
