package filters

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

const DEFAULT_UNAVAILABLE_VALUE = "out of stock"

type AvailabilityFilterConfig struct {
	// Records whose availability equals Value, ignoring case and surrounding whitespace, are dropped
	Value string
}

func NewAvailabilityFilterConfigFromRaw(raw map[string]string) (AvailabilityFilterConfig, error) {
	value := DEFAULT_UNAVAILABLE_VALUE
	if v, ok := raw["value"]; ok {
		value = strings.TrimSpace(v)
		if value == "" {
			return AvailabilityFilterConfig{}, fmt.Errorf("invalid `value` in AvailabilityFilter - expected a non-empty string")
		}
	}

	return AvailabilityFilterConfig{
		Value: value,
	}, nil
}

type AvailabilityFilter struct {
	value string
}

func NewAvailabilityFilter(conf AvailabilityFilterConfig) *AvailabilityFilter {
	return &AvailabilityFilter{
		value: strings.ToLower(conf.Value),
	}
}

func (a *AvailabilityFilter) Filter(ctx context.Context, rec *feed.Record) (shouldDrop bool, err error) {
	availability := strings.ToLower(strings.TrimSpace(rec.Value(feed.AVAILABILITY_FIELD)))
	return availability == a.value, nil
}

func init() {
	filtersRegistry.Register("availability", func(rawConf map[string]string) (interface{}, error) {
		return NewAvailabilityFilterConfigFromRaw(rawConf)
	}, func(rawConf interface{}) (Filter, error) {
		if conf, ok := rawConf.(AvailabilityFilterConfig); ok {
			return NewAvailabilityFilter(conf), nil
		}

		return nil, fmt.Errorf("BUG: invalid type for Availability filter configuration (expected AvailabilityFilterConfig)")
	})
}
