package filters_test

import (
	"context"
	"testing"

	"github.com/sinkingpoint/feedpipe/internal/filters"
)

func TestTengoFilterDrops(t *testing.T) {
	filter, err := filters.NewTengoFilter(filters.TengoFilterConfig{Source: []byte(`
text := import("text")
if text.contains(text.to_lower(record.title), "bike") {
	drop = true
}
`)})
	if err != nil {
		t.Fatalf("Failed to compile script: %s", err)
	}

	if shouldDrop, err := filter.Filter(context.Background(), newRecord("title", "Rustic Plastic Bike")); err != nil || !shouldDrop {
		t.Fatalf("Expected the bike to be dropped (err: %v)", err)
	}

	// The previous verdict mustn't leak into the next record
	if shouldDrop, err := filter.Filter(context.Background(), newRecord("title", "Rustic Plastic Chair")); err != nil || shouldDrop {
		t.Fatalf("Expected the chair to be kept (err: %v)", err)
	}
}

func TestTengoFilterRewritesFields(t *testing.T) {
	filter, err := filters.NewTengoFilter(filters.TengoFilterConfig{Source: []byte(`
text := import("text")
record.title = text.to_upper(record.title)
record.source = "feed"
`)})
	if err != nil {
		t.Fatalf("Failed to compile script: %s", err)
	}

	rec := newRecord("id", "1", "title", "bike")
	if shouldDrop, err := filter.Filter(context.Background(), rec); err != nil || shouldDrop {
		t.Fatalf("Expected the record to be kept (err: %v)", err)
	}

	names := rec.Names()
	if len(names) != 3 || names[0] != "id" || names[1] != "title" || names[2] != "source" {
		t.Fatalf("Unexpected field order %v", names)
	}

	if rec.Value("title") != "BIKE" || rec.Value("source") != "feed" {
		t.Fatalf("Fields weren't rewritten: %v", rec.Values())
	}
}

func TestTengoFilterFailsClosed(t *testing.T) {
	filter, err := filters.NewTengoFilter(filters.TengoFilterConfig{Source: []byte(`x := record.id()`)})
	if err != nil {
		t.Fatalf("Failed to compile script: %s", err)
	}

	shouldDrop, err := filter.Filter(context.Background(), newRecord("id", "1"))
	if err == nil {
		t.Fatal("Expected a runtime error from the script")
	}

	if !shouldDrop {
		t.Fatal("A failing script should drop the record unless fail_open is set")
	}
}
