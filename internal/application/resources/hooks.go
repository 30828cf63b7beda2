package resources

import (
	"context"

	"donorcrm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// NewOpportunityService logs every stage change. Any stage may follow any other.
func NewOpportunityService(db *gorm.DB) *Service[domain.Opportunity] {
	s := NewService[domain.Opportunity](db, "Opportunity")
	s.AfterUpdate = func(ctx context.Context, before, after *domain.Opportunity) {
		if before.Stage == after.Stage {
			return
		}
		log.Info().
			Str("opportunity_id", after.ID.String()).
			Str("from", before.Stage).
			Str("to", after.Stage).
			Msg("opportunity stage changed")
	}
	return s
}

// CompleteTask marks a task done.
func CompleteTask(ctx context.Context, s *Service[domain.Task], id uuid.UUID) (*domain.Task, error) {
	task, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Completed == 1 {
		return task, nil
	}
	task.Completed = 1
	if err := s.Repo.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}
