package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/sinkingpoint/feedpipe/internal/pipeline"
)

const NO_PRICE = "n/a"

// Summary is the end of run report. The prices are nil if no record was accepted
type Summary struct {
	TotalRowCount     int      `json:"total_row_count"`
	RemovedRowCount   int      `json:"removed_row_count"`
	MalformedRowCount int      `json:"malformed_row_count"`
	WrittenRowCount   int      `json:"written_row_count"`
	MinPrice          *float64 `json:"min_price"`
	MaxPrice          *float64 `json:"max_price"`
	DurationSeconds   float64  `json:"duration_seconds"`
}

func NewSummary(result pipeline.Result) Summary {
	summary := Summary{
		TotalRowCount:     result.Aggregate.TotalRowCount,
		RemovedRowCount:   result.Aggregate.RemovedRowCount,
		MalformedRowCount: result.Aggregate.MalformedRowCount,
		WrittenRowCount:   result.Written,
		DurationSeconds:   result.Duration.Seconds(),
	}

	if min, max, ok := result.Aggregate.PriceRange(); ok {
		summary.MinPrice = &min
		summary.MaxPrice = &max
	}

	return summary
}

func (s Summary) Duration() time.Duration {
	return time.Duration(s.DurationSeconds * float64(time.Second))
}

// FormatPrice renders a price as a plain number, without trailing zeros
func FormatPrice(price *float64) string {
	if price == nil {
		return NO_PRICE
	}

	return strconv.FormatFloat(*price, 'f', -1, 64)
}

// A Reporter tells the user how a run went
type Reporter interface {
	Report(summary Summary) error
}

// GetReporterFromString returns the named reporter, writing to w where that makes sense
func GetReporterFromString(name string, w io.Writer) (Reporter, error) {
	if w == nil {
		w = os.Stdout
	}

	switch name {
	case "", "text":
		return &TextReporter{W: w}, nil
	case "json":
		return &JSONReporter{W: w}, nil
	case "journald":
		return &JournaldReporter{}, nil
	}

	return nil, fmt.Errorf("no reporter named `%s` found", name)
}
