package spec

import (
	"time"

	"gorm.io/datatypes"
)

// CategorySpec is one cached crawl result. CacheKey is the sanitized detail
// name; DetailName keeps the original display label so that two different
// labels colliding on the same sanitized key can be detected instead of
// silently overwriting each other.
type CategorySpec struct {
	CacheKey   string         `gorm:"primaryKey;column:cache_key" json:"cache_key"`
	DetailName string         `gorm:"not null;column:detail_name" json:"detail_name"`
	MidKey     string         `gorm:"column:mid_key" json:"mid_key"`
	URL        string         `gorm:"not null;column:url" json:"url"`
	Data       datatypes.JSON `gorm:"not null" json:"data"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (CategorySpec) TableName() string { return "category_spec" }
