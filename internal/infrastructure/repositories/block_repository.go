package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Abdulaziz20007/Phono-Backend/domain"
)

// BlockRepositoryImpl implements domain.BlockRepository using GORM
type BlockRepositoryImpl struct {
	db *gorm.DB
}

// DBBlock represents the database model for Block
type DBBlock struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	AdminID   uint      `gorm:"index;not null"`
	Reason    string    `gorm:"size:500"`
	ExpiresAt time.Time `gorm:"column:expire_date;index;not null"`
	CreatedAt time.Time
}

func (DBBlock) TableName() string {
	return "blocks"
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db *gorm.DB) domain.BlockRepository {
	return &BlockRepositoryImpl{db: db}
}

// Create implements domain.BlockRepository
func (r *BlockRepositoryImpl) Create(ctx context.Context, block *domain.Block) error {
	row := &DBBlock{
		UserID:    block.UserID,
		AdminID:   block.AdminID,
		Reason:    block.Reason,
		ExpiresAt: block.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	block.ID = row.ID
	block.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.BlockRepository
func (r *BlockRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Block, error) {
	var row DBBlock
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBlockNotFound
		}
		return nil, err
	}
	return toDomainBlock(&row), nil
}

// ListByUser implements domain.BlockRepository
func (r *BlockRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*domain.Block, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// ListByAdmin implements domain.BlockRepository
func (r *BlockRepositoryImpl) ListByAdmin(ctx context.Context, adminID uint) ([]*domain.Block, error) {
	return r.list(ctx, "admin_id = ?", adminID)
}

// HasActive implements domain.BlockRepository
func (r *BlockRepositoryImpl) HasActive(ctx context.Context, userID uint, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBBlock{}).
		Where("user_id = ? AND expire_date > ?", userID, now).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update implements domain.BlockRepository
func (r *BlockRepositoryImpl) Update(ctx context.Context, block *domain.Block) error {
	res := r.db.WithContext(ctx).Model(&DBBlock{}).Where("id = ?", block.ID).Updates(map[string]interface{}{
		"reason":      block.Reason,
		"expire_date": block.ExpiresAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

// Delete implements domain.BlockRepository
func (r *BlockRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBBlock{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBlockNotFound
	}
	return nil
}

func (r *BlockRepositoryImpl) list(ctx context.Context, query string, arg interface{}) ([]*domain.Block, error) {
	var rows []DBBlock
	if err := r.db.WithContext(ctx).Where(query, arg).Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	blocks := make([]*domain.Block, 0, len(rows))
	for i := range rows {
		blocks = append(blocks, toDomainBlock(&rows[i]))
	}
	return blocks, nil
}

func toDomainBlock(row *DBBlock) *domain.Block {
	return &domain.Block{
		ID:        row.ID,
		UserID:    row.UserID,
		AdminID:   row.AdminID,
		Reason:    row.Reason,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}
}

// Models lists every table owned by the repositories, in migration order
func Models() []interface{} {
	return []interface{}{&DBUser{}, &DBAdmin{}, &DBOTP{}, &DBBlock{}}
}
