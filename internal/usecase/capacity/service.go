package capacity

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/capacity"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type LimitInput struct {
	WeekDay string
	Limit   int
}

// Service manages the daily limits of the calling admin.
type Service struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewService(repo domain.Repository, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, audit: audit}
}

func requireAdmin(actor identity.Actor) error {
	if !actor.IsAdmin() || actor.UserID == uuid.Nil {
		return httperr.ErrForbidden("admin_only", "only admins manage daily limits")
	}
	return nil
}

func validate(in LimitInput) (domain.WeekDay, error) {
	day, err := domain.ParseWeekDay(in.WeekDay)
	if err != nil {
		return "", err
	}
	if in.Limit <= 0 {
		return "", httperr.ErrInvalidData("invalid_limit", "limit must be greater than zero")
	}
	return day, nil
}

func (s *Service) Create(
	ctx context.Context,
	actor identity.Actor,
	in LimitInput,
) (*models.AdminDailyLimit, error) {

	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	day, err := validate(in)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByWeekDay(ctx, actor.UserID, day)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperr.ErrAlreadyExists("limit_exists", "a limit for %s already exists", day)
	}

	l := &models.AdminDailyLimit{
		AdminID: actor.UserID,
		WeekDay: string(day),
		Limit:   in.Limit,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.dispatch(actor, "daily_limit_created", l)
	return l, nil
}

// Get returns a limit owned by the caller.
func (s *Service) Get(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
) (*models.AdminDailyLimit, error) {

	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.AdminID != actor.UserID {
		return nil, httperr.ErrForbidden("not_owner", "daily limit %s belongs to another admin", id)
	}
	return l, nil
}

func (s *Service) List(
	ctx context.Context,
	actor identity.Actor,
) ([]models.AdminDailyLimit, error) {

	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	limits, err := s.repo.ListByAdmin(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if limits == nil {
		limits = []models.AdminDailyLimit{}
	}

	sort.SliceStable(limits, func(i, j int) bool {
		return domain.WeekDay(limits[i].WeekDay).Order() < domain.WeekDay(limits[j].WeekDay).Order()
	})
	return limits, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
	in LimitInput,
) (*models.AdminDailyLimit, error) {

	l, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	day, err := validate(in)
	if err != nil {
		return nil, err
	}

	if string(day) != l.WeekDay {
		clash, err := s.repo.GetByWeekDay(ctx, actor.UserID, day)
		if err != nil {
			return nil, err
		}
		if clash != nil {
			return nil, httperr.ErrAlreadyExists("limit_exists", "a limit for %s already exists", day)
		}
	}

	l.WeekDay = string(day)
	l.Limit = in.Limit
	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}

	s.dispatch(actor, "daily_limit_updated", l)
	return l, nil
}

func (s *Service) Delete(
	ctx context.Context,
	actor identity.Actor,
	id uuid.UUID,
) error {

	l, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.dispatch(actor, "daily_limit_deleted", l)
	return nil
}

func (s *Service) dispatch(actor identity.Actor, action string, l *models.AdminDailyLimit) {
	actorID, entityID := actor.UserID, l.ID
	s.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "admin_daily_limit",
		EntityID: &entityID,
		Metadata: map[string]any{"week_day": l.WeekDay, "limit": l.Limit},
	})
}
