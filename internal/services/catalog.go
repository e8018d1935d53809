package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/yungbote/shopbot-backend/internal/domain/catalog"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

// Catalog wraps the static three-level category structure loaded once at
// startup. Read-only after construction.
type Catalog struct {
	structure catalog.Structure
	log       *logger.Logger
}

func NewCatalog(structure catalog.Structure, baseLog *logger.Logger) *Catalog {
	return &Catalog{structure: structure, log: baseLog.With("service", "Catalog")}
}

func LoadCatalog(path string, baseLog *logger.Logger) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category structure %s: %w", path, err)
	}
	var structure catalog.Structure
	if err := json.Unmarshal(raw, &structure); err != nil {
		return nil, fmt.Errorf("parse category structure %s: %w", path, err)
	}
	if len(structure) == 0 {
		return nil, fmt.Errorf("category structure %s is empty", path)
	}
	return NewCatalog(structure, baseLog), nil
}

// AllKeywords returns every top and mid category name, tops followed by their
// own mids, in structure order. This is the candidate list the validate
// oracle selects from.
func (c *Catalog) AllKeywords() []string {
	var out []string
	for _, top := range c.structure {
		out = append(out, top.Name)
		for _, mid := range top.Mids {
			out = append(out, mid.Name)
		}
	}
	return out
}

// Expand turns validated keywords into the mid -> details candidate map.
// A top-level keyword expands to all of its mid categories; a mid-level
// keyword expands to just itself. First occurrence wins.
func (c *Catalog) Expand(keywords []string) RecommendationMap {
	seen := make(map[string]bool)
	var out RecommendationMap
	for _, kw := range keywords {
		if top, ok := c.structure.Top(kw); ok {
			for _, mid := range top.Mids {
				if seen[mid.Name] {
					continue
				}
				seen[mid.Name] = true
				out = append(out, MidGroup{Mid: mid.Name, Details: detailNames(mid)})
			}
			continue
		}
		if mid, ok := c.structure.Mid(kw); ok {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			out = append(out, MidGroup{Mid: mid.Name, Details: detailNames(mid)})
		}
	}
	return out
}

// ResolveURL looks up the crawl target for an exact (mid, detail) pair.
func (c *Catalog) ResolveURL(midKey, detailKey string) (string, bool) {
	mid, ok := c.structure.Mid(midKey)
	if !ok {
		return "", false
	}
	for _, d := range mid.Details {
		if d.Name == detailKey {
			return d.URL, true
		}
	}
	return "", false
}

func detailNames(mid catalog.MidCategory) []string {
	names := make([]string, 0, len(mid.Details))
	for _, d := range mid.Details {
		names = append(names, d.Name)
	}
	return names
}
