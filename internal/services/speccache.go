package services

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"gorm.io/datatypes"

	types "github.com/yungbote/shopbot-backend/internal/domain"
	specrepo "github.com/yungbote/shopbot-backend/internal/data/repos/spec"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	disallowedRe = regexp.MustCompile(`[^가-힣A-Za-z0-9_-]`)
	underscoreRe = regexp.MustCompile(`_+`)
)

// SanitizeDetailName maps a detail category label to its cache key: trim,
// whitespace to underscore, disallowed runes to underscore, collapse runs,
// trim leading/trailing underscores. Deterministic and idempotent.
func SanitizeDetailName(name string) string {
	s := strings.TrimSpace(name)
	s = whitespaceRe.ReplaceAllString(s, "_")
	s = disallowedRe.ReplaceAllString(s, "_")
	s = underscoreRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// SpecCache is the persistent crawled-spec store keyed by sanitized detail
// name. Load faults degrade to misses; Save faults are reported so the writer
// can retry.
type SpecCache interface {
	// Exists reports a usable cached entry for the detail name. Storage
	// faults count as a miss.
	Exists(ctx context.Context, detailName string) bool
	Load(ctx context.Context, detailName string) (SpecData, error)
	Save(ctx context.Context, midKey, detailName, url string, data SpecData) error
}

type specCache struct {
	repo specrepo.CategorySpecRepo
	log  *logger.Logger
}

func NewSpecCache(repo specrepo.CategorySpecRepo, baseLog *logger.Logger) SpecCache {
	return &specCache{repo: repo, log: baseLog.With("service", "SpecCache")}
}

func (c *specCache) Exists(ctx context.Context, detailName string) bool {
	key := SanitizeDetailName(detailName)
	if key == "" {
		return false
	}
	entry, err := c.repo.Get(ctx, key)
	if err != nil {
		c.log.Warn("spec cache lookup failed, treating as miss", "cache_key", key, "error", err)
		return false
	}
	// A colliding entry for a different detail name is not a hit for this one.
	return entry != nil && entry.DetailName == detailName
}

func (c *specCache) Load(ctx context.Context, detailName string) (SpecData, error) {
	key := SanitizeDetailName(detailName)
	if key == "" {
		return SpecData{}, ErrEmptySanitizedName
	}
	entry, err := c.repo.Get(ctx, key)
	if err != nil {
		c.log.Warn("spec cache load failed, treating as miss", "cache_key", key, "error", err)
		return SpecData{}, ErrSpecNotFound
	}
	if entry == nil || entry.DetailName != detailName {
		return SpecData{}, ErrSpecNotFound
	}
	var data SpecData
	if err := json.Unmarshal(entry.Data, &data); err != nil {
		c.log.Warn("spec cache entry undecodable, treating as miss", "cache_key", key, "error", err)
		return SpecData{}, ErrSpecNotFound
	}
	if data.Empty() {
		return SpecData{}, ErrSpecNotFound
	}
	return data, nil
}

func (c *specCache) Save(ctx context.Context, midKey, detailName, url string, data SpecData) error {
	key := SanitizeDetailName(detailName)
	if key == "" {
		return ErrEmptySanitizedName
	}
	existing, err := c.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if existing != nil && existing.DetailName != detailName {
		c.log.Warn("spec cache key collision, rejecting save",
			"cache_key", key, "existing_detail", existing.DetailName, "new_detail", detailName)
		return ErrSpecConflict
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.repo.Upsert(ctx, &types.CategorySpec{
		CacheKey:   key,
		DetailName: detailName,
		MidKey:     midKey,
		URL:        url,
		Data:       datatypes.JSON(raw),
	})
}
