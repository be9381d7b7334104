package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-services/internal/domain/user"
	"github.com/BruksfildServices01/appointment-services/internal/httperr"
	"github.com/BruksfildServices01/appointment-services/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func userNotFound(id uuid.UUID) error {
	return httperr.ErrNotFound("user_not_found", "user with id %s not found", id)
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	return translate("create user", conn(ctx, r.db).Create(u).Error, nil)
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	res := conn(ctx, r.db).
		Model(&models.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"name":          u.Name,
			"email":         u.Email,
			"phone":         u.Phone,
			"role":          u.Role,
			"password_hash": u.PasswordHash,
		})
	if res.Error != nil {
		return translate("update user", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return userNotFound(u.ID)
	}
	return nil
}

func (r *UserGormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return translate("delete user", res.Error, nil)
	}
	if res.RowsAffected == 0 {
		return userNotFound(id)
	}
	return nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := conn(ctx, r.db).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate("get user", err, userNotFound(id))
	}
	return &u, nil
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := conn(ctx, r.db).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translate("find user by email", err, nil)
	}
	return &u, nil
}

func (r *UserGormRepository) ListClients(
	ctx context.Context,
	f user.ClientFilter,
) ([]models.User, int64, error) {

	q := conn(ctx, r.db).
		Model(&models.User{}).
		Where("role = ?", models.RoleClient)

	if name := strings.TrimSpace(f.Name); name != "" {
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}
	if email := strings.TrimSpace(f.Email); email != "" {
		q = q.Where("email ILIKE ?", "%"+strings.ToLower(email)+"%")
	}
	if f.CreatedSince != nil {
		q = q.Where("created_at >= ?", *f.CreatedSince)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate("count clients", err, nil)
	}

	users := []models.User{}
	if total == 0 {
		return users, 0, nil
	}

	if err := q.
		Order("created_at DESC").
		Limit(f.Size).
		Offset(offset(f.Page, f.Size)).
		Find(&users).Error; err != nil {
		return nil, 0, translate("list clients", err, nil)
	}

	return users, total, nil
}

// Compile-time check
var _ user.Repository = (*UserGormRepository)(nil)
