package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:100"`
	Surname      string    `gorm:"size:100"`
	Phone        string    `gorm:"uniqueIndex;size:32"`
	PasswordHash string    `gorm:"column:password"`
	IsActive     bool      `gorm:"index;default:false"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicatePhone
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Activate implements domain.UserRepository
func (r *UserRepositoryImpl) Activate(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("is_active", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete implements domain.UserRepository
func (r *UserRepositoryImpl) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Delete(&DBUser{}, userID).Error
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Name:         user.Name,
		Surname:      user.Surname,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Name:         dbUser.Name,
		Surname:      dbUser.Surname,
		Phone:        dbUser.Phone,
		PasswordHash: dbUser.PasswordHash,
		IsActive:     dbUser.IsActive,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
