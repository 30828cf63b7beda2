package gifts

import (
	"context"
	"fmt"
	"time"

	"donorcrm-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) allGifts(ctx context.Context) ([]domain.Gift, error) {
	gifts := make([]domain.Gift, 0)
	if err := s.DB.WithContext(ctx).Order("received_at DESC").Find(&gifts).Error; err != nil {
		return nil, fmt.Errorf("load gifts: %w", err)
	}
	return gifts, nil
}

// Analytics classifies every gift and returns the report, filtered to category when set.
func (s *Service) Analytics(ctx context.Context, category string) (*Analytics, error) {
	gifts, err := s.allGifts(ctx)
	if err != nil {
		return nil, err
	}
	report, err := Analyze(gifts, category, s.now())
	if err != nil {
		return nil, err
	}
	log.Debug().Int("gifts", len(gifts)).Str("category", category).Msg("gift analytics computed")
	return report, nil
}

// Export renders every gift as an .xlsx workbook.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	gifts, err := s.allGifts(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(gifts))
	seen := make(map[uuid.UUID]bool, len(gifts))
	for _, g := range gifts {
		if !seen[g.PersonID] {
			seen[g.PersonID] = true
			ids = append(ids, g.PersonID)
		}
	}
	donors := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		var persons []domain.Person
		if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&persons).Error; err != nil {
			return nil, fmt.Errorf("load donors: %w", err)
		}
		for i := range persons {
			donors[persons[i].ID] = persons[i].FullName()
		}
	}

	b, err := BuildWorkbook(gifts, donors)
	if err != nil {
		return nil, err
	}
	log.Info().Int("gifts", len(gifts)).Int("bytes", len(b)).Msg("gift export generated")
	return b, nil
}
