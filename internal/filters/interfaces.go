package filters

import (
	"context"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

// A Filter decides whether a record should be dropped from the feed. Filters may
// rewrite fields of records they let through
type Filter interface {
	Filter(ctx context.Context, rec *feed.Record) (shouldDrop bool, err error)
}

// Named pairs a filter with the name it was configured under, for metrics and logs
type Named struct {
	Name string
	Filter
}

// DefaultChain returns the brand, availability and price filters with their
// default configs, in that order
func DefaultChain() []Named {
	return []Named{
		{Name: "brand", Filter: NewBrandFilter(BrandFilterConfig{Pattern: DEFAULT_BRAND_PATTERN})},
		{Name: "availability", Filter: NewAvailabilityFilter(AvailabilityFilterConfig{Value: DEFAULT_UNAVAILABLE_VALUE})},
		{Name: "price", Filter: NewPriceFilter(PriceFilterConfig{Symbol: DEFAULT_PRICE_SYMBOL, Currency: DEFAULT_PRICE_CURRENCY})},
	}
}
