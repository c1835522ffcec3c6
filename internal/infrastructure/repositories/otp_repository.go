package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// OTPRepositoryImpl implements domain.OTPRepository using GORM
type OTPRepositoryImpl struct {
	db *gorm.DB
}

// DBOTP is the otps table. user_id is unique: an account owns at most one code.
type DBOTP struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	Code      string    `gorm:"size:16;not null"`
	UUID      string    `gorm:"column:uuid;uniqueIndex;size:36;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (DBOTP) TableName() string {
	return "otps"
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &OTPRepositoryImpl{db: db}
}

// Create implements domain.OTPRepository
func (r *OTPRepositoryImpl) Create(ctx context.Context, otp *domain.OTP) error {
	row := &DBOTP{
		UserID:    otp.UserID,
		Code:      otp.Code,
		UUID:      otp.UUID,
		ExpiresAt: otp.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrConflictingOTPRequest
		}
		return err
	}
	otp.ID = row.ID
	otp.CreatedAt = row.CreatedAt
	return nil
}

// FindByUUID implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindByUUID(ctx context.Context, uuid string) (*domain.OTP, error) {
	return r.first(ctx, "uuid = ?", uuid)
}

// FindByUserID implements domain.OTPRepository
func (r *OTPRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.OTP, error) {
	return r.first(ctx, "user_id = ?", userID)
}

// Delete implements domain.OTPRepository
func (r *OTPRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBOTP{}, id).Error
}

// DeleteByUserID implements domain.OTPRepository
func (r *OTPRepositoryImpl) DeleteByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBOTP{}).Error
}

func (r *OTPRepositoryImpl) first(ctx context.Context, query string, arg interface{}) (*domain.OTP, error) {
	var row DBOTP
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &domain.OTP{
		ID:        row.ID,
		UserID:    row.UserID,
		Code:      row.Code,
		UUID:      row.UUID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}
