package filters

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

const DEFAULT_PRICE_SYMBOL = "$"
const DEFAULT_PRICE_CURRENCY = "USD"

type PriceFilterConfig struct {
	Symbol   string
	Currency string
}

func NewPriceFilterConfigFromRaw(raw map[string]string) (PriceFilterConfig, error) {
	conf := PriceFilterConfig{
		Symbol:   DEFAULT_PRICE_SYMBOL,
		Currency: DEFAULT_PRICE_CURRENCY,
	}

	if symbol, ok := raw["symbol"]; ok {
		conf.Symbol = symbol
	}

	if currency, ok := raw["currency"]; ok {
		conf.Currency = strings.TrimSpace(currency)
		if conf.Currency == "" {
			return PriceFilterConfig{}, fmt.Errorf("invalid `currency` in PriceFilter - expected a non-empty string")
		}
	}

	return conf, nil
}

// PriceFilter drops records without a usable price, and rewrites the price
// of everything else into a display format like `$590.00 USD`
type PriceFilter struct {
	PriceFilterConfig
}

func NewPriceFilter(conf PriceFilterConfig) *PriceFilter {
	return &PriceFilter{
		PriceFilterConfig: conf,
	}
}

// CleanPrice strips everything that isn't a digit or a decimal point
func CleanPrice(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}

		return -1
	}, raw)
}

func (p *PriceFilter) Filter(ctx context.Context, rec *feed.Record) (shouldDrop bool, err error) {
	field, ok := rec.Get(feed.PRICE_FIELD)
	if !ok || field.Null {
		return true, nil
	}

	cleaned := strings.TrimSpace(CleanPrice(field.Value))
	if cleaned == "" {
		return true, nil
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		// An unparseable price is a reason to drop the record, not a filter failure
		return true, nil
	}

	rec.SetPrice(price)
	rec.Set(feed.PRICE_FIELD, fmt.Sprintf("%s%s %s", p.Symbol, cleaned, p.Currency))

	return false, nil
}

func init() {
	filtersRegistry.Register("price", func(rawConf map[string]string) (interface{}, error) {
		return NewPriceFilterConfigFromRaw(rawConf)
	}, func(rawConf interface{}) (Filter, error) {
		if conf, ok := rawConf.(PriceFilterConfig); ok {
			return NewPriceFilter(conf), nil
		}

		return nil, fmt.Errorf("BUG: invalid type for Price filter configuration (expected PriceFilterConfig)")
	})
}
