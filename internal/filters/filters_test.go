package filters_test

import (
	"context"
	"testing"

	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/filters"
)

func newRecord(fields ...string) *feed.Record {
	rec := feed.NewRecord(len(fields) / 2)
	for i := 0; i+1 < len(fields); i += 2 {
		rec.Append(feed.Field{Name: fields[i], Value: fields[i+1]})
	}

	return rec
}

func TestBrandFilter(t *testing.T) {
	filter := filters.NewBrandFilter(filters.BrandFilterConfig{Pattern: filters.DEFAULT_BRAND_PATTERN})

	tests := []struct {
		brand      string
		shouldDrop bool
	}{
		{"Collier", true},
		{"  cOLLIER  ", true},
		{"Collier     ", true},
		{"Skiles Collier - Fahey", true},
		{"Collier - Fahey", true},
		// Substring match, not a word match
		{"Collierville Co", true},
		{"Skiles - Fahey", false},
		{"", false},
		{"   ", false},
	}

	for _, test := range tests {
		shouldDrop, err := filter.Filter(context.Background(), newRecord("brand", test.brand))
		if err != nil {
			t.Fatalf("Unexpected error for brand %q: %s", test.brand, err)
		}

		if shouldDrop != test.shouldDrop {
			t.Errorf("Brand %q: expected shouldDrop=%v, got %v", test.brand, test.shouldDrop, shouldDrop)
		}
	}

	if shouldDrop, _ := filter.Filter(context.Background(), newRecord("id", "1")); shouldDrop {
		t.Error("A record without a brand shouldn't be dropped")
	}
}

func TestAvailabilityFilter(t *testing.T) {
	filter := filters.NewAvailabilityFilter(filters.AvailabilityFilterConfig{Value: filters.DEFAULT_UNAVAILABLE_VALUE})

	tests := []struct {
		availability string
		shouldDrop   bool
	}{
		{"out of stock", true},
		{"Out Of Stock", true},
		{"  OUT OF STOCK ", true},
		{"in stock", false},
		{"In Stock", false},
		{"out of stock soon", false},
		{"", false},
	}

	for _, test := range tests {
		shouldDrop, err := filter.Filter(context.Background(), newRecord("availability", test.availability))
		if err != nil {
			t.Fatalf("Unexpected error for availability %q: %s", test.availability, err)
		}

		if shouldDrop != test.shouldDrop {
			t.Errorf("Availability %q: expected shouldDrop=%v, got %v", test.availability, test.shouldDrop, shouldDrop)
		}
	}
}

func TestPriceFilterReformats(t *testing.T) {
	filter := filters.NewPriceFilter(filters.PriceFilterConfig{Symbol: "$", Currency: "USD"})

	tests := []struct {
		raw       string
		formatted string
		price     float64
	}{
		{"$590.00", "$590.00 USD", 590},
		{"590.00", "$590.00 USD", 590},
		{" 1,590.0 USD ", "$1590.0 USD", 1590},
		{"50", "$50 USD", 50},
	}

	for _, test := range tests {
		rec := newRecord("id", "1", "price", test.raw, "brand", "b")
		shouldDrop, err := filter.Filter(context.Background(), rec)
		if err != nil || shouldDrop {
			t.Fatalf("Price %q should be accepted (drop: %v, err: %v)", test.raw, shouldDrop, err)
		}

		if got := rec.Value("price"); got != test.formatted {
			t.Errorf("Price %q: expected %q, got %q", test.raw, test.formatted, got)
		}

		if price, ok := rec.Price(); !ok || price != test.price {
			t.Errorf("Price %q: expected numeric %v, got %v", test.raw, test.price, price)
		}

		if names := rec.Names(); names[1] != "price" {
			t.Errorf("Price field moved: %v", names)
		}
	}
}

func TestPriceFilterDrops(t *testing.T) {
	filter := filters.NewPriceFilter(filters.PriceFilterConfig{Symbol: "$", Currency: "USD"})

	for _, raw := range []string{"", "free", "$", "1.2.3", "."} {
		shouldDrop, err := filter.Filter(context.Background(), newRecord("price", raw))
		if err != nil {
			t.Fatalf("Unexpected error for price %q: %s", raw, err)
		}

		if !shouldDrop {
			t.Errorf("Price %q should have been dropped", raw)
		}
	}

	if shouldDrop, _ := filter.Filter(context.Background(), newRecord("id", "1")); !shouldDrop {
		t.Error("A record without a price should be dropped")
	}

	rec := feed.NewRecord(1)
	rec.Append(feed.Field{Name: "price", Null: true})
	if shouldDrop, _ := filter.Filter(context.Background(), rec); !shouldDrop {
		t.Error("A record with a null price should be dropped")
	}
}

func TestCleanPrice(t *testing.T) {
	if cleaned := filters.CleanPrice("$1,234.50 USD"); cleaned != "1234.50" {
		t.Fatalf("Expected 1234.50, got %q", cleaned)
	}
}

func TestDefaultChain(t *testing.T) {
	chain := filters.DefaultChain()
	expected := []string{"brand", "availability", "price"}
	if len(chain) != len(expected) {
		t.Fatalf("Expected %d filters, got %d", len(expected), len(chain))
	}

	for i := range expected {
		if chain[i].Name != expected[i] {
			t.Errorf("Filter %d: expected %s, got %s", i, expected[i], chain[i].Name)
		}
	}
}
