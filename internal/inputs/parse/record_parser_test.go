package parse_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/filters"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sinkingpoint/feedpipe/internal/inputs/parse"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
	"github.com/sinkingpoint/feedpipe/testutils/mock_filters"
)

func productLine(id, brand, price, availability string) string {
	return fmt.Sprintf(`{"id":%q,"title":"Rustic Plastic Bike","description":"Pizza","link":"https://else.name","image_link":"http://lorempixel.com/640/480","brand":%q,"price":%q,"availability":%q}`, id, brand, price, availability)
}

func TestParseOutOfStock(t *testing.T) {
	agg := feed.NewAggregate()
	result := parse.NewDefaultRecordParser().Parse(context.Background(), []byte(productLine("70395", "Skiles - Fahey", "590.00", "out of stock")), agg)

	if result.Verdict != parse.REMOVED || result.DroppedBy != "availability" {
		t.Fatalf("Expected the record to be removed by availability, got %s by %s", result.Verdict, result.DroppedBy)
	}

	if agg.TotalRowCount != 1 || agg.RemovedRowCount != 1 {
		t.Fatalf("Unexpected counts %+v", agg)
	}
}

func TestParseCollierBrands(t *testing.T) {
	agg := feed.NewAggregate()
	parser := parse.NewDefaultRecordParser()

	for _, brand := range []string{"Skiles Collier - Fahey", "Collier - Fahey", "Collier     ", "cOLLIER", "Collierville Co"} {
		result := parser.Parse(context.Background(), []byte(productLine("70395", brand, "590.00", "in stock")), agg)
		if result.Verdict != parse.REMOVED || result.DroppedBy != "brand" {
			t.Errorf("Brand %q: expected removal by brand, got %s by %s", brand, result.Verdict, result.DroppedBy)
		}
	}

	if agg.TotalRowCount != 5 || agg.RemovedRowCount != 5 {
		t.Fatalf("Unexpected counts %+v", agg)
	}

	if _, _, ok := agg.PriceRange(); ok {
		t.Fatal("Removed records mustn't touch the price range")
	}
}

func TestParseInStock(t *testing.T) {
	agg := feed.NewAggregate()
	parser := parse.NewDefaultRecordParser()

	for _, availability := range []string{"in stock", "In Stock"} {
		result := parser.Parse(context.Background(), []byte(productLine("70395", "Skiles Fahey", "$590.00", availability)), agg)
		if result.Verdict != parse.ACCEPTED {
			t.Fatalf("Availability %q: expected the record to be accepted, got %s", availability, result.Verdict)
		}

		rec := result.Record
		if rec.Value("id") != "70395" || rec.Value("title") != "Rustic Plastic Bike" || rec.Value("availability") != availability {
			t.Errorf("Fields were changed: %v", rec.Values())
		}

		if rec.Value("price") != "$590.00 USD" {
			t.Errorf("Expected a formatted price, got %q", rec.Value("price"))
		}

		expected := []string{"id", "title", "description", "link", "image_link", "brand", "price", "availability"}
		for i, name := range rec.Names() {
			if name != expected[i] {
				t.Fatalf("Field order changed: %v", rec.Names())
			}
		}
	}

	if min, max, ok := agg.PriceRange(); !ok || min != 590 || max != 590 {
		t.Fatalf("Expected a 590 price range, got %v/%v", min, max)
	}
}

func TestParseMalformed(t *testing.T) {
	agg := feed.NewAggregate()
	result := parse.NewDefaultRecordParser().Parse(context.Background(), []byte(`{"id": "1", "price": `), agg)

	if result.Verdict != parse.MALFORMED {
		t.Fatalf("Expected a malformed verdict, got %s", result.Verdict)
	}

	if agg.TotalRowCount != 1 || agg.RemovedRowCount != 0 || agg.MalformedRowCount != 1 {
		t.Fatalf("Malformed lines should only count as seen: %+v", agg)
	}
}

func TestParseBadSeparatorsAreMalformed(t *testing.T) {
	agg := feed.NewAggregate()
	parser := parse.NewDefaultRecordParser()

	lines := []string{
		`{"id":"9" "brand":"Skiles" "availability":"in stock" "price":"$5.00"}`,
		`{"id" "9","brand":"Skiles","availability":"in stock","price":"$5.00"}`,
		`{"id":"9",,"brand":"Skiles","availability":"in stock","price":"$5.00"}`,
	}

	for _, line := range lines {
		if result := parser.Parse(context.Background(), []byte(line), agg); result.Verdict != parse.MALFORMED {
			t.Errorf("Expected %s to be malformed, got %s", line, result.Verdict)
		}
	}

	if agg.TotalRowCount != 3 || agg.MalformedRowCount != 3 || agg.RemovedRowCount != 0 || agg.AcceptedRowCount != 0 {
		t.Fatalf("Unexpected counts %+v", agg)
	}

	if _, _, ok := agg.PriceRange(); ok {
		t.Fatal("Malformed lines shouldn't update the price range")
	}
}

func TestParseMissingOrBadPrice(t *testing.T) {
	agg := feed.NewAggregate()
	parser := parse.NewDefaultRecordParser()

	lines := []string{
		`{"id":"1","brand":"Skiles","availability":"in stock"}`,
		`{"id":"2","brand":"Skiles","availability":"in stock","price":null}`,
		`{"id":"3","brand":"Skiles","availability":"in stock","price":"call us"}`,
		`{"id":"4","brand":"Skiles","availability":"in stock","price":"1.2.3"}`,
	}

	for _, line := range lines {
		if result := parser.Parse(context.Background(), []byte(line), agg); result.Verdict != parse.REMOVED || result.DroppedBy != "price" {
			t.Errorf("Expected %s to be removed by price, got %s by %s", line, result.Verdict, result.DroppedBy)
		}
	}

	if agg.TotalRowCount != 4 || agg.RemovedRowCount != 4 {
		t.Fatalf("Unexpected counts %+v", agg)
	}
}

func TestParseEmptyLine(t *testing.T) {
	agg := feed.NewAggregate()
	if result := parse.NewDefaultRecordParser().Parse(context.Background(), []byte("   \t"), agg); result.Verdict != parse.EMPTY {
		t.Fatalf("Expected an empty verdict, got %s", result.Verdict)
	}

	if agg.TotalRowCount != 0 {
		t.Fatal("Empty lines shouldn't be counted")
	}
}

func TestParseStopsAtFirstDrop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mock_filters.NewMockFilter(ctrl)
	first.EXPECT().Filter(gomock.Any(), gomock.Any()).Return(true, nil).Times(1)

	// Never reached
	second := mock_filters.NewMockFilter(ctrl)

	parser := parse.NewRecordParser(&parse.JSONDecoder{}, []filters.Named{
		{Name: "first", Filter: first},
		{Name: "second", Filter: second},
	})

	agg := feed.NewAggregate()
	result := parser.Parse(context.Background(), []byte(`{"id":"1"}`), agg)
	if result.Verdict != parse.REMOVED || result.DroppedBy != "first" {
		t.Fatalf("Expected removal by the first filter, got %s by %s", result.Verdict, result.DroppedBy)
	}
}

func TestParseFilterErrorDrops(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := mock_filters.NewMockFilter(ctrl)
	failing.EXPECT().Filter(gomock.Any(), gomock.Any()).Return(true, errors.New("script exploded")).Times(1)

	parser := parse.NewRecordParser(nil, []filters.Named{{Name: "tengo", Filter: failing}})

	agg := feed.NewAggregate()
	if result := parser.Parse(context.Background(), []byte(`{"id":"1"}`), agg); result.Verdict != parse.REMOVED {
		t.Fatalf("Expected removal, got %s", result.Verdict)
	}

	if agg.RemovedRowCount != 1 {
		t.Fatalf("Unexpected counts %+v", agg)
	}
}

func TestParseAcceptsWithoutPriceFilter(t *testing.T) {
	parser := parse.NewRecordParser(nil, nil)

	agg := feed.NewAggregate()
	if result := parser.Parse(context.Background(), []byte(`{"id":"1"}`), agg); result.Verdict != parse.ACCEPTED {
		t.Fatalf("Expected acceptance, got %s", result.Verdict)
	}

	if _, _, ok := agg.PriceRange(); ok {
		t.Fatal("No price was validated, so there shouldn't be a range")
	}
}

func TestParseMetrics(t *testing.T) {
	dropped := metrics.FilterDropped.WithLabelValues("brand")
	droppedBefore := testutil.ToFloat64(dropped)
	malformedBefore := testutil.ToFloat64(metrics.RowsMalformed)
	seenBefore := testutil.ToFloat64(metrics.RowsSeen)

	agg := feed.NewAggregate()
	parser := parse.NewDefaultRecordParser()
	parser.Parse(context.Background(), []byte(productLine("1", "Collier", "50.00", "in stock")), agg)
	parser.Parse(context.Background(), []byte("{"), agg)

	if got := testutil.ToFloat64(dropped) - droppedBefore; got != 1 {
		t.Errorf("Expected one brand drop, got %v", got)
	}

	if got := testutil.ToFloat64(metrics.RowsMalformed) - malformedBefore; got != 1 {
		t.Errorf("Expected one malformed row, got %v", got)
	}

	if got := testutil.ToFloat64(metrics.RowsSeen) - seenBefore; got != 2 {
		t.Errorf("Expected two rows seen, got %v", got)
	}
}
