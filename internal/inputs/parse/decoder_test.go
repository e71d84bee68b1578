package parse_test

import (
	"reflect"
	"testing"

	"github.com/sinkingpoint/feedpipe/internal/inputs/parse"
)

func TestJSONDecoderKeepsOrder(t *testing.T) {
	decoder := &parse.JSONDecoder{}
	rec, err := decoder.Decode([]byte(`{"id":"70395","title":"Rustic Plastic Bike","price":"590.00","stock":12,"active":true,"brand":null}`))
	if err != nil {
		t.Fatalf("Failed to decode: %s", err)
	}

	if names := rec.Names(); !reflect.DeepEqual(names, []string{"id", "title", "price", "stock", "active", "brand"}) {
		t.Fatalf("Unexpected field order %v", names)
	}

	if values := rec.Values(); !reflect.DeepEqual(values, []string{"70395", "Rustic Plastic Bike", "590.00", "12", "true", ""}) {
		t.Fatalf("Unexpected values %v", values)
	}

	if f, _ := rec.Get("brand"); !f.Null {
		t.Fatal("Expected brand to be null")
	}
}

func TestJSONDecoderDuplicateKeys(t *testing.T) {
	rec, err := (&parse.JSONDecoder{}).Decode([]byte(`{"a":"1","b":"2","a":"3"}`))
	if err != nil {
		t.Fatalf("Failed to decode: %s", err)
	}

	if names := rec.Names(); !reflect.DeepEqual(names, []string{"a", "b"}) || rec.Value("a") != "3" {
		t.Fatalf("Unexpected record %v = %v", names, rec.Values())
	}
}

func TestJSONDecoderRejects(t *testing.T) {
	lines := []string{
		`not json`,
		`{"id":"1"`,
		`["id","1"]`,
		`"id"`,
		`{"id":{"nested":"1"}}`,
		`{"tags":["a","b"]}`,
		`{"id":"1"} {"id":"2"}`,
		`{"id":"1"}}`,
		`{"id":"1" "price":"5"}`,
		`{"id" "1"}`,
		`{"id":"1",,"price":"5"}`,
		`{"id":"1",}`,
	}

	for _, line := range lines {
		if _, err := (&parse.JSONDecoder{}).Decode([]byte(line)); err == nil {
			t.Errorf("Expected %q to be rejected", line)
		}
	}
}

func TestGetDecoderFromString(t *testing.T) {
	if _, err := parse.GetDecoderFromString("json"); err != nil {
		t.Fatalf("Expected a json decoder: %s", err)
	}

	if _, err := parse.GetDecoderFromString("yaml"); err == nil {
		t.Fatal("Expected an error for an unknown decoder")
	}
}
