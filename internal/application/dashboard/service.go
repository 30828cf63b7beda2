package dashboard

import (
	"context"
	"time"

	"donorcrm-backend/internal/domain"
	"donorcrm-backend/internal/infrastructure/repository"
	"donorcrm-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrDashboardNotImplemented is returned by the role dashboards whose metric sets are not defined yet.
var ErrDashboardNotImplemented = &apperrors.NotImplementedError{Message: "Dashboard not implemented"}

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

// Home loads gifts, opportunities, open tasks and donors and computes the home dashboard.
// Any failed query fails the whole dashboard.
func (s *Service) Home(ctx context.Context) (*HomeDashboard, error) {
	now := s.now()
	since := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	if t := now.Add(-trailingDonorWindow); t.Before(since) {
		since = t
	}

	gifts, err := repository.New[domain.Gift](s.DB, "Gift").Find(ctx, repository.Query{
		Where: "received_at >= ?", Args: []interface{}{since},
	})
	if err != nil {
		return nil, err
	}
	opps, err := repository.New[domain.Opportunity](s.DB, "Opportunity").Find(ctx, repository.Query{Order: "close_date ASC"})
	if err != nil {
		return nil, err
	}
	tasks, err := repository.New[domain.Task](s.DB, "Task").Find(ctx, repository.Query{
		Filters: map[string]interface{}{"completed": 0},
	})
	if err != nil {
		return nil, err
	}
	persons := repository.New[domain.Person](s.DB, "Person")
	totalDonors, err := persons.Count(ctx, repository.Query{})
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string)
	if len(opps) > 0 {
		ids := make([]uuid.UUID, 0, len(opps))
		for _, o := range opps {
			ids = append(ids, o.PersonID)
		}
		donors, err := persons.Find(ctx, repository.Query{Where: "id IN ?", Args: []interface{}{ids}})
		if err != nil {
			return nil, err
		}
		for i := range donors {
			names[donors[i].ID] = donors[i].FullName()
		}
	}

	log.Info().
		Int("gifts", len(gifts)).
		Int("opportunities", len(opps)).
		Int("open_tasks", len(tasks)).
		Int64("donors", totalDonors).
		Msg("home dashboard loaded")

	return ComputeHome(HomeInput{
		Now:           now,
		Gifts:         gifts,
		Opportunities: opps,
		OpenTasks:     tasks,
		DonorNames:    names,
		TotalDonors:   totalDonors,
	}), nil
}

// MGO is the major gift officer dashboard.
func (s *Service) MGO(ctx context.Context) (interface{}, error) {
	return nil, ErrDashboardNotImplemented
}

// DevDirector is the development director dashboard.
func (s *Service) DevDirector(ctx context.Context) (interface{}, error) {
	return nil, ErrDashboardNotImplemented
}

// CEO is the executive dashboard.
func (s *Service) CEO(ctx context.Context) (interface{}, error) {
	return nil, ErrDashboardNotImplemented
}
