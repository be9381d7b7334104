package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/catalog"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

const listKey = "catalog:services"

// Cache is the subset of the redis cache the catalog needs. Misses and
// failures both come back as nil.
type Cache interface {
	Get(ctx context.Context, key string) []byte
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type Service struct {
	repo  domain.Repository
	cache Cache
	ttl   time.Duration
	audit *audit.Dispatcher
}

func NewService(repo domain.Repository, cache Cache, ttl time.Duration, audit *audit.Dispatcher) *Service {
	return &Service{repo: repo, cache: cache, ttl: ttl, audit: audit}
}

func itemKey(id uuid.UUID) string {
	return listKey + ":" + id.String()
}

func validate(in ServiceInput) (ServiceInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Name == "" {
		return in, httperr.ErrInvalidData("missing_name", "service name is required")
	}
	if !in.Price.IsPositive() {
		return in, httperr.ErrInvalidData("invalid_price", "price must be greater than zero")
	}
	in.Price = in.Price.Round(2)
	return in, nil
}

func requireAdmin(actor identity.Actor) error {
	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only", "only admins manage the service catalog")
	}
	return nil
}

// ======================================================
// Reads (cached)
// ======================================================

func (s *Service) List(ctx context.Context) ([]models.Service, error) {
	if s.cache != nil {
		if raw := s.cache.Get(ctx, listKey); raw != nil {
			var cached []models.Service
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	services, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []models.Service{}
	}

	s.store(ctx, listKey, services)
	return services, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	if s.cache != nil {
		if raw := s.cache.Get(ctx, itemKey(id)); raw != nil {
			var cached models.Service
			if json.Unmarshal(raw, &cached) == nil {
				return &cached, nil
			}
		}
	}

	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store(ctx, itemKey(id), svc)
	return svc, nil
}

// ======================================================
// Writes (admin)
// ======================================================

func (s *Service) Create(ctx context.Context, actor identity.Actor, in ServiceInput) (*models.Service, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	in, err := validate(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, uuid.Nil); err != nil {
		return nil, err
	}

	svc := &models.Service{Name: in.Name, Description: in.Description, Price: in.Price}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.invalidate(ctx, svc.ID)
	s.dispatch(actor, "service_created", svc.ID)
	return svc, nil
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, in ServiceInput) (*models.Service, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	in, err := validate(in)
	if err != nil {
		return nil, err
	}

	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, in.Name, id); err != nil {
		return nil, err
	}

	svc.Name, svc.Description, svc.Price = in.Name, in.Description, in.Price
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.dispatch(actor, "service_updated", id)
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)
	s.dispatch(actor, "service_deleted", id)
	return nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string, owner uuid.UUID) error {
	existing, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != owner {
		return httperr.ErrAlreadyExists("service_exists", "a service named %q already exists", name)
	}
	return nil
}

func (s *Service) store(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	if raw, err := json.Marshal(v); err == nil {
		s.cache.Set(ctx, key, raw, s.ttl)
	}
}

func (s *Service) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, listKey, itemKey(id))
}

func (s *Service) dispatch(actor identity.Actor, action string, id uuid.UUID) {
	actorID := actor.UserID
	s.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "service",
		EntityID: &id,
	})
}
