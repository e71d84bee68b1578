package filters

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

type LimitFilterConfig struct {
	PartitionKey string
	Max          int
	IgnoreCase   bool
}

func NewLimitFilterConfigFromRaw(raw map[string]string) (LimitFilterConfig, error) {
	var partitionKey string
	if key, ok := raw["partition_key"]; ok && key != "" {
		partitionKey = key
	} else {
		return LimitFilterConfig{}, fmt.Errorf("missing `partition_key` in LimitFilter")
	}

	var max int
	if maxStr, ok := raw["max"]; ok {
		if val, err := strconv.Atoi(maxStr); err == nil {
			if val <= 0 {
				return LimitFilterConfig{}, fmt.Errorf("invalid max in LimitFilter - expected a positive int, got %d", val)
			}
			max = val
		} else {
			return LimitFilterConfig{}, fmt.Errorf("invalid max in LimitFilter - expected an int, got `%s`", maxStr)
		}
	} else {
		return LimitFilterConfig{}, fmt.Errorf("missing `max` in LimitFilter")
	}

	ignoreCase := true
	if s, ok := raw["ignore_case"]; ok {
		val, err := strconv.ParseBool(s)
		if err != nil {
			return LimitFilterConfig{}, fmt.Errorf("invalid ignore_case in LimitFilter - expected true or false, got `%s`", s)
		}

		ignoreCase = val
	}

	return LimitFilterConfig{
		PartitionKey: partitionKey,
		Max:          max,
		IgnoreCase:   ignoreCase,
	}, nil
}

// LimitFilter lets through at most Max records for each value of the partition field,
// e.g. to cap the number of listings per brand. Records are counted in feed order, so the
// first Max win. Records missing the field share the empty partition
type LimitFilter struct {
	LimitFilterConfig
	counts     map[string]int
	countsLock sync.Mutex
}

func NewLimitFilter(conf LimitFilterConfig) *LimitFilter {
	return &LimitFilter{
		LimitFilterConfig: conf,
		counts:            make(map[string]int),
	}
}

func (l *LimitFilter) Filter(ctx context.Context, rec *feed.Record) (shouldDrop bool, err error) {
	key := strings.TrimSpace(rec.Value(l.PartitionKey))
	if l.IgnoreCase {
		key = strings.ToLower(key)
	}

	l.countsLock.Lock()
	defer l.countsLock.Unlock()

	if l.counts[key] >= l.Max {
		return true, nil
	}

	l.counts[key] += 1
	return false, nil
}

func init() {
	filtersRegistry.Register("limit", func(rawConf map[string]string) (interface{}, error) {
		return NewLimitFilterConfigFromRaw(rawConf)
	}, func(rawConf interface{}) (Filter, error) {
		if conf, ok := rawConf.(LimitFilterConfig); ok {
			return NewLimitFilter(conf), nil
		}

		return nil, fmt.Errorf("BUG: invalid type for Limit filter configuration (expected LimitFilterConfig)")
	})
}
