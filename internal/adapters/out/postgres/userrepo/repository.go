// Package userrepo stores the identities mirrored from the identity provider.
package userrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/user"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserDTO is one row of the users table.
type UserDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"not null"`
	Email   string    `gorm:"uniqueIndex;not null"`
	Role    string    `gorm:"type:varchar(32);index;not null"`
	Blocked bool      `gorm:"not null;default:false"`
}

// TableName overrides the GORM table name.
func (UserDTO) TableName() string {
	return "users"
}

func fromDomain(u *user.User) UserDTO {
	return UserDTO{
		ID:      u.ID().Bytes(),
		Name:    u.Name(),
		Email:   u.Email(),
		Role:    u.Role().String(),
		Blocked: u.IsBlocked(),
	}
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return user.RestoreUser(id, dto.Name, dto.Email, role, dto.Blocked)
}

// GormUserRepository implements ports.UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository binds the repository to db.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get loads a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, errs.NewDependencyFailedErrorWithCause("postgres", err)
	}
	return toDomain(dto)
}

// Add inserts or replaces the user row.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	if err != nil {
		return errs.NewDependencyFailedErrorWithCause("postgres", err)
	}
	return nil
}

// ListByRole returns the unblocked users holding role, ordered by ID.
func (r *GormUserRepository) ListByRole(ctx context.Context, role user.Role) ([]*user.User, error) {
	var dtos []UserDTO
	if err := r.db.WithContext(ctx).
		Where("role = ? AND blocked = ?", role.String(), false).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, errs.NewDependencyFailedErrorWithCause("postgres", err)
	}

	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
