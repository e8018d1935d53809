package spec

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/shopbot-backend/internal/domain"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

type CategorySpecRepo interface {
	// Get returns (nil, nil) when no entry exists for the cache key.
	Get(ctx context.Context, cacheKey string) (*types.CategorySpec, error)
	Exists(ctx context.Context, cacheKey string) (bool, error)
	// Upsert overwrites any prior entry for the same cache key. Concurrent
	// writers race last-writer-wins, which is fine: entries are idempotent
	// recomputations of the same external page.
	Upsert(ctx context.Context, entry *types.CategorySpec) error
}

type categorySpecRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategorySpecRepo(db *gorm.DB, baseLog *logger.Logger) CategorySpecRepo {
	return &categorySpecRepo{db: db, log: baseLog.With("repo", "CategorySpecRepo")}
}

func (r *categorySpecRepo) Get(ctx context.Context, cacheKey string) (*types.CategorySpec, error) {
	var entry types.CategorySpec
	err := r.db.WithContext(ctx).Where("cache_key = ?", cacheKey).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *categorySpecRepo) Exists(ctx context.Context, cacheKey string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&types.CategorySpec{}).
		Where("cache_key = ?", cacheKey).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categorySpecRepo) Upsert(ctx context.Context, entry *types.CategorySpec) error {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"detail_name", "mid_key", "url", "data", "updated_at",
		}),
	}).Create(entry).Error
}
