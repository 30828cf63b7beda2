package resources

import (
	"context"
	"encoding/json"
	"strings"

	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/infrastructure/repository"
	"donorcrm-backend/internal/pkg/apperrors"
	"donorcrm-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Keys a client may send in an update body but never changes.
var immutableKeys = []string{"id", "createdAt", "updatedAt"}

// Service is the CRUD service shared by every REST resource.
type Service[T any] struct {
	Repo *repository.Repository[T]

	// AfterUpdate runs after a successful update with the row as it was before the patch.
	AfterUpdate func(ctx context.Context, before, after *T)
}

// NewService returns a Service backed by a repository over db.
func NewService[T any](db *gorm.DB, resource string) *Service[T] {
	return &Service[T]{Repo: repository.New[T](db, resource)}
}

func (s *Service[T]) List(ctx context.Context, q repository.Query) ([]T, error) {
	return s.Repo.Find(ctx, q)
}

func (s *Service[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.Repo.Get(ctx, id)
}

// Create fills defaults, validates and inserts row.
func (s *Service[T]) Create(ctx context.Context, row *T) (*T, error) {
	if d, ok := any(row).(domain.Defaulter); ok {
		d.ApplyDefaults()
	}
	if err := validation.Struct(row); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, row); err != nil {
		return nil, err
	}
	log.Debug().Str("resource", s.Repo.Resource).Msg("created")
	return row, nil
}

// Update merges patch onto the stored row, validates the result and saves it.
func (s *Service[T]) Update(ctx context.Context, id uuid.UUID, patch map[string]json.RawMessage) (*T, error) {
	row, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *row

	// encoding/json matches keys case-insensitively, so "ID" would land on id too.
	for k := range patch {
		if isImmutable(k) {
			delete(patch, k)
		}
	}
	b, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(b, row); err != nil {
		return nil, apperrors.NewValidation("Invalid request body: %v", err)
	}
	if r, ok := any(row).(domain.Record); ok {
		*r.BaseFields() = *any(&before).(domain.Record).BaseFields()
	}
	if err := validation.Struct(row); err != nil {
		return nil, err
	}
	if err := s.Repo.Save(ctx, row); err != nil {
		return nil, err
	}
	if s.AfterUpdate != nil {
		s.AfterUpdate(ctx, &before, row)
	}
	return row, nil
}

func isImmutable(key string) bool {
	for _, k := range immutableKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}

func (s *Service[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Debug().Str("resource", s.Repo.Resource).Str("id", id.String()).Msg("deleted")
	return nil
}
