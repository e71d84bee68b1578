package filters

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

const DEFAULT_BRAND_PATTERN = "collier"

type BrandFilterConfig struct {
	// Records whose brand contains Pattern, ignoring case, are dropped
	Pattern string
}

func NewBrandFilterConfigFromRaw(raw map[string]string) (BrandFilterConfig, error) {
	pattern := DEFAULT_BRAND_PATTERN
	if p, ok := raw["pattern"]; ok {
		pattern = strings.TrimSpace(p)
		if pattern == "" {
			return BrandFilterConfig{}, fmt.Errorf("invalid `pattern` in BrandFilter - expected a non-empty string")
		}
	}

	return BrandFilterConfig{
		Pattern: pattern,
	}, nil
}

// BrandFilter drops records whose brand contains a blocked substring.
// This is a plain substring match so "Collierville" matches "collier" too
type BrandFilter struct {
	pattern string
}

func NewBrandFilter(conf BrandFilterConfig) *BrandFilter {
	return &BrandFilter{
		pattern: strings.ToLower(conf.Pattern),
	}
}

func (b *BrandFilter) Filter(ctx context.Context, rec *feed.Record) (shouldDrop bool, err error) {
	brand := strings.ToLower(strings.TrimSpace(rec.Value(feed.BRAND_FIELD)))
	if brand == "" {
		return false, nil
	}

	return strings.Contains(brand, b.pattern), nil
}

func init() {
	filtersRegistry.Register("brand", func(rawConf map[string]string) (interface{}, error) {
		return NewBrandFilterConfigFromRaw(rawConf)
	}, func(rawConf interface{}) (Filter, error) {
		if conf, ok := rawConf.(BrandFilterConfig); ok {
			return NewBrandFilter(conf), nil
		}

		return nil, fmt.Errorf("BUG: invalid type for Brand filter configuration (expected BrandFilterConfig)")
	})
}
