package feed_test

import (
	"reflect"
	"testing"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

func TestRecordKeepsOrder(t *testing.T) {
	rec := feed.NewRecord(3)
	rec.Append(feed.Field{Name: "id", Value: "1"})
	rec.Append(feed.Field{Name: "price", Value: "590.00"})
	rec.Append(feed.Field{Name: "brand", Value: "Skiles"})

	rec.Set("price", "$590.00 USD")
	rec.Set("extra", "x")

	if names := rec.Names(); !reflect.DeepEqual(names, []string{"id", "price", "brand", "extra"}) {
		t.Fatalf("Unexpected field order: %v", names)
	}

	if values := rec.Values(); !reflect.DeepEqual(values, []string{"1", "$590.00 USD", "Skiles", "x"}) {
		t.Fatalf("Unexpected values: %v", values)
	}
}

func TestRecordNullFields(t *testing.T) {
	rec := feed.NewRecord(1)
	rec.Append(feed.Field{Name: "price", Null: true})

	f, ok := rec.Get("price")
	if !ok || !f.Null {
		t.Fatalf("Expected a null price field, got %+v (present: %v)", f, ok)
	}

	if rec.Value("missing") != "" {
		t.Fatal("Expected an empty value for a missing field")
	}

	rec.Set("price", "1")
	if f, _ := rec.Get("price"); f.Null {
		t.Fatal("Set should clear the null flag")
	}
}

func TestRecordPrice(t *testing.T) {
	rec := feed.NewRecord(0)
	if _, ok := rec.Price(); ok {
		t.Fatal("A fresh record shouldn't have a price")
	}

	rec.SetPrice(12.5)
	if p, ok := rec.Price(); !ok || p != 12.5 {
		t.Fatalf("Expected price 12.5, got %v (ok: %v)", p, ok)
	}
}

func TestRecordPutReplacesInPlace(t *testing.T) {
	rec := feed.NewRecord(2)
	rec.Put(feed.Field{Name: "id", Value: "1"})
	rec.Put(feed.Field{Name: "brand", Value: "Skiles"})
	rec.Put(feed.Field{Name: "id", Null: true})

	if names := rec.Names(); !reflect.DeepEqual(names, []string{"id", "brand"}) {
		t.Fatalf("Unexpected field order: %v", names)
	}

	if f, _ := rec.Get("id"); !f.Null || f.Value != "" {
		t.Fatalf("Expected Put to replace the whole field, got %+v", f)
	}
}
