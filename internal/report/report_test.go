package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/pipeline"
	"github.com/sinkingpoint/feedpipe/internal/report"
)

func testResult(prices ...float64) pipeline.Result {
	agg := feed.NewAggregate()
	agg.TotalRowCount = 4
	agg.RemovedRowCount = 1
	for _, price := range prices {
		agg.ObservePrice(price)
	}

	return pipeline.Result{
		Aggregate: *agg,
		Written:   len(prices),
		Duration:  1500 * time.Millisecond,
	}
}

func TestTextReport(t *testing.T) {
	out := &bytes.Buffer{}
	reporter, err := report.GetReporterFromString("text", out)
	if err != nil {
		t.Fatal(err)
	}

	if err := reporter.Report(report.NewSummary(testResult(50, 590, 190))); err != nil {
		t.Fatal(err)
	}

	expected := "Total Row Count: 4\nRemoved Row Count: 1\nMalformed Row Count: 0\nWritten Row Count: 3\nMax Price: 590\nMin Price: 50\n"
	if out.String() != expected {
		t.Fatalf("Unexpected report:\n%q\nexpected:\n%q", out.String(), expected)
	}
}

func TestTextReportNoPrices(t *testing.T) {
	out := &bytes.Buffer{}
	if err := (&report.TextReporter{W: out}).Report(report.NewSummary(testResult())); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(out.Bytes(), []byte("Max Price: n/a\nMin Price: n/a\n")) {
		t.Fatalf("Expected missing prices to be reported as n/a, got %q", out.String())
	}
}

func TestJSONReport(t *testing.T) {
	out := &bytes.Buffer{}
	if err := (&report.JSONReporter{W: out}).Report(report.NewSummary(testResult(50, 1590.5))); err != nil {
		t.Fatal(err)
	}

	decoded := report.Summary{}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("Failed to decode report %q: %s", out.String(), err)
	}

	if decoded.TotalRowCount != 4 || decoded.RemovedRowCount != 1 || decoded.WrittenRowCount != 2 {
		t.Fatalf("Unexpected counts %+v", decoded)
	}

	if decoded.MinPrice == nil || *decoded.MinPrice != 50 || decoded.MaxPrice == nil || *decoded.MaxPrice != 1590.5 {
		t.Fatalf("Unexpected prices %v %v", decoded.MinPrice, decoded.MaxPrice)
	}

	if decoded.Duration() != 1500*time.Millisecond {
		t.Fatalf("Unexpected duration %s", decoded.Duration())
	}
}

func TestJSONReportNoPrices(t *testing.T) {
	out := &bytes.Buffer{}
	if err := (&report.JSONReporter{W: out}).Report(report.NewSummary(testResult())); err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(out.Bytes(), []byte(`"min_price":null`)) {
		t.Fatalf("Expected a null min price, got %q", out.String())
	}
}

func TestJournalFields(t *testing.T) {
	fields := report.JournalFields(report.NewSummary(testResult(50)))
	if fields["TOTAL_ROW_COUNT"] != "4" || fields["MIN_PRICE"] != "50" || fields["MAX_PRICE"] != "50" {
		t.Fatalf("Unexpected fields %v", fields)
	}
}

func TestGetReporterFromString(t *testing.T) {
	for _, name := range []string{"", "text", "json", "journald"} {
		if _, err := report.GetReporterFromString(name, nil); err != nil {
			t.Errorf("Expected a reporter for `%s`: %s", name, err)
		}
	}

	if _, err := report.GetReporterFromString("xml", nil); err == nil {
		t.Fatal("Expected an error for an unknown reporter")
	}
}
