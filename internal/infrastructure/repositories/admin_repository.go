package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// AdminRepositoryImpl implements domain.AdminRepository using GORM
type AdminRepositoryImpl struct {
	db *gorm.DB
}

// DBAdmin represents the database model for Admin
type DBAdmin struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100"`
	Surname      string `gorm:"size:100"`
	Phone        string `gorm:"uniqueIndex;size:32"`
	PasswordHash string `gorm:"column:password"`
	IsCreator    bool   `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (DBAdmin) TableName() string {
	return "admins"
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &AdminRepositoryImpl{db: db}
}

// Create implements domain.AdminRepository
func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *domain.Admin) error {
	dbAdmin := &DBAdmin{
		Name:         admin.Name,
		Surname:      admin.Surname,
		Phone:        admin.Phone,
		PasswordHash: admin.PasswordHash,
		IsCreator:    admin.IsCreator,
	}
	if err := r.db.WithContext(ctx).Create(dbAdmin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicatePhone
		}
		return err
	}
	admin.ID = dbAdmin.ID
	admin.CreatedAt = dbAdmin.CreatedAt
	admin.UpdatedAt = dbAdmin.UpdatedAt
	return nil
}

// FindByPhone implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Admin, error) {
	return r.first(ctx, "phone = ?", phone)
}

// FindByID implements domain.AdminRepository
func (r *AdminRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Admin, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *AdminRepositoryImpl) first(ctx context.Context, query string, arg interface{}) (*domain.Admin, error) {
	var a DBAdmin
	if err := r.db.WithContext(ctx).Where(query, arg).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &domain.Admin{
		ID:           a.ID,
		Name:         a.Name,
		Surname:      a.Surname,
		Phone:        a.Phone,
		PasswordHash: a.PasswordHash,
		IsCreator:    a.IsCreator,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}, nil
}
