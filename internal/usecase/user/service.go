package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/appointment-services/internal/audit"
	"github.com/BruksfildServices01/appointment-services/internal/domain/identity"
	domain "github.com/BruksfildServices01/appointment-services/internal/domain/user"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
	"github.com/BruksfildServices01/appointment-services/internal/pagination"
)

const minPasswordLength = 6

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type CreateUserInput struct {
	RegisterInput
	Role string
}

// UpdateUserInput is a partial update; nil fields are kept.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	Role     *string
}

type ListClientsInput struct {
	Name       string
	Email      string
	DateFilter string
	Page       int
	Size       int
}

type ClientPage struct {
	Items []models.User
	Total int64
	Page  int
	Size  int
}

type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

// ======================================================
// SERVICE
// ======================================================

type Service struct {
	repo   domain.Repository
	tokens *Tokens
	audit  *audit.Dispatcher

	// emailDomainOK is consulted on registration when set.
	emailDomainOK func(email string) bool
	now           func() time.Time
}

func NewService(
	repo domain.Repository,
	tokens *Tokens,
	audit *audit.Dispatcher,
	emailDomainOK func(string) bool,
) *Service {
	return &Service{
		repo:          repo,
		tokens:        tokens,
		audit:         audit,
		emailDomainOK: emailDomainOK,
		now:           time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) newUser(ctx context.Context, in RegisterInput, role string, checkDomain bool) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrInvalidData("missing_name", "name is required")
	}

	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, httperr.ErrInvalidData("invalid_email", "email %q is not valid", in.Email)
	}
	if checkDomain && s.emailDomainOK != nil && !s.emailDomainOK(email) {
		return nil, httperr.ErrInvalidData("invalid_email_domain", "the e-mail domain does not accept mail")
	}

	if len(in.Password) < minPasswordLength {
		return nil, httperr.ErrInvalidData("weak_password", "password must have at least %d characters", minPasswordLength)
	}

	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, owner uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != owner {
		return httperr.ErrAlreadyExists("email_taken", "a user with email %s already exists", email)
	}
	return nil
}

func (s *Service) session(u *models.User) (*Session, error) {
	token, exp, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token, ExpiresAt: exp}, nil
}

// Register signs up a client and logs them in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	u, err := s.newUser(ctx, in, models.RoleClient, true)
	if err != nil {
		return nil, err
	}

	s.dispatch(u.ID, "user_registered", u)
	return s.session(u)
}

func (s *Service) Create(ctx context.Context, actor identity.Actor, in CreateUserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only", "only admins can create users")
	}

	role := in.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleClient && role != models.RoleAdmin {
		return nil, httperr.ErrInvalidData("invalid_role", "unknown role %q", in.Role)
	}

	u, err := s.newUser(ctx, in.RegisterInput, role, true)
	if err != nil {
		return nil, err
	}

	s.dispatch(actor.UserID, "user_created", u)
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	invalid := httperr.ErrUnauthorized("invalid_credentials", "invalid e-mail or password")

	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, invalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, invalid
		}
		return nil, err
	}

	return s.session(u)
}

// Get returns a user to itself or to an admin.
// Authenticate verifies a bearer token and resolves the caller against the
// stored user, so a deleted or demoted account loses access immediately.
func (s *Service) Authenticate(ctx context.Context, raw string) (identity.Actor, error) {
	claimed, err := s.tokens.Parse(raw)
	if err != nil {
		return identity.Actor{}, httperr.ErrUnauthorized("invalid_token", "token is invalid or expired")
	}

	u, err := s.repo.GetByID(ctx, claimed.UserID)
	if err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return identity.Actor{}, httperr.ErrUnauthorized("invalid_token", "token owner no longer exists")
		}
		return identity.Actor{}, err
	}

	return identity.Actor{UserID: u.ID, Role: u.Role}, nil
}

func (s *Service) Get(ctx context.Context, actor identity.Actor, id uuid.UUID) (*models.User, error) {
	if !actor.IsAdmin() && actor.UserID != id {
		return nil, httperr.ErrForbidden("not_owner", "cannot read another user")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	u, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrInvalidData("missing_name", "name is required")
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, httperr.ErrInvalidData("invalid_email", "email %q is not valid", *in.Email)
		}
		if err := s.ensureEmailFree(ctx, email, u.ID); err != nil {
			return nil, err
		}
		u.Email = email
	}
	if in.Password != nil {
		if len(*in.Password) < minPasswordLength {
			return nil, httperr.ErrInvalidData("weak_password", "password must have at least %d characters", minPasswordLength)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hashed)
	}
	if in.Role != nil && *in.Role != u.Role {
		if !actor.IsAdmin() {
			return nil, httperr.ErrForbidden("admin_only", "only admins can change roles")
		}
		if *in.Role != models.RoleClient && *in.Role != models.RoleAdmin {
			return nil, httperr.ErrInvalidData("invalid_role", "unknown role %q", *in.Role)
		}
		u.Role = *in.Role
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.dispatch(actor.UserID, "user_updated", u)
	return u, nil
}

func (s *Service) Delete(ctx context.Context, actor identity.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only", "only admins can delete users")
	}
	if actor.UserID == id {
		return httperr.ErrInvalidState("cannot_delete_self", "admins cannot delete their own account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	actorID := actor.UserID
	s.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})
	return nil
}

func (s *Service) ListClients(ctx context.Context, actor identity.Actor, in ListClientsInput) (ClientPage, error) {
	if !actor.IsAdmin() {
		return ClientPage{}, httperr.ErrForbidden("admin_only", "only admins can list clients")
	}

	f := domain.ClientFilter{Name: in.Name, Email: in.Email}
	f.Page, f.Size = pagination.Normalize(in.Page, in.Size)

	if in.DateFilter != "" {
		df, err := domain.ParsePastDateFilter(in.DateFilter)
		if err != nil {
			return ClientPage{}, err
		}
		since := df.Since(s.now())
		f.CreatedSince = &since
	}

	users, total, err := s.repo.ListClients(ctx, f)
	if err != nil {
		return ClientPage{}, err
	}
	if users == nil {
		users = []models.User{}
	}

	return ClientPage{Items: users, Total: total, Page: f.Page, Size: f.Size}, nil
}

// EnsureAdmin creates the bootstrap admin unless a user already owns the
// address. It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	u, err := s.newUser(ctx, RegisterInput{Name: name, Email: email, Password: password}, models.RoleAdmin, false)
	if err != nil {
		return false, err
	}

	s.dispatch(u.ID, "admin_bootstrapped", u)
	return true, nil
}

func (s *Service) dispatch(actorID uuid.UUID, action string, u *models.User) {
	entityID := u.ID
	s.audit.Dispatch(audit.Event{
		ActorID:  &actorID,
		Action:   action,
		Entity:   "user",
		EntityID: &entityID,
		Metadata: map[string]any{"role": u.Role},
	})
}
