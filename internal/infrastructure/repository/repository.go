package repository

import (
	"context"
	"errors"
	"fmt"

	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query narrows a Find or Count. Filters are column equality matches; Where/Args add a raw condition.
type Query struct {
	Filters map[string]interface{}
	Where   string
	Args    []interface{}
	Order   string
	Limit   int
}

// Repository is a thin GORM query builder for one model type.
type Repository[T any] struct {
	DB       *gorm.DB
	Resource string // display name used in not-found errors, e.g. "Gift"
}

// New returns a repository for T.
func New[T any](db *gorm.DB, resource string) *Repository[T] {
	return &Repository[T]{DB: db, Resource: resource}
}

func (r *Repository[T]) scoped(ctx context.Context, q Query) *gorm.DB {
	tx := r.DB.WithContext(ctx).Model(new(T))
	if len(q.Filters) > 0 {
		tx = tx.Where(q.Filters)
	}
	if q.Where != "" {
		tx = tx.Where(q.Where, q.Args...)
	}
	return tx
}

// Find returns the rows matching q.
func (r *Repository[T]) Find(ctx context.Context, q Query) ([]T, error) {
	tx := r.scoped(ctx, q)
	if q.Order != "" {
		tx = tx.Order(q.Order)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	rows := make([]T, 0)
	if err := tx.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.Resource, err)
	}
	return rows, nil
}

// Count returns the number of rows matching q.
func (r *Repository[T]) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	if err := r.scoped(ctx, q).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", r.Resource, err)
	}
	return n, nil
}

// Get loads one row by primary key.
func (r *Repository[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: r.Resource, ID: id.String()}
		}
		return nil, fmt.Errorf("get %s: %w", r.Resource, err)
	}
	return &row, nil
}

// Create inserts row.
func (r *Repository[T]) Create(ctx context.Context, row *T) error {
	if err := r.DB.WithContext(ctx).Create(row).Error; err != nil {
		return r.translate("create", err)
	}
	return nil
}

// Save writes every column of an existing row.
func (r *Repository[T]) Save(ctx context.Context, row *T) error {
	if err := r.DB.WithContext(ctx).Save(row).Error; err != nil {
		return r.translate("update", err)
	}
	return nil
}

// Delete removes a row by primary key. Missing rows are a NotFoundError.
func (r *Repository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return r.translate("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: r.Resource, ID: id.String()}
	}
	return nil
}

func (r *Repository[T]) translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.NewValidation("%s references a record that does not exist", r.Resource)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.NewValidation("%s already exists", r.Resource)
	}
	return fmt.Errorf("%s %s: %w", op, r.Resource, err)
}
