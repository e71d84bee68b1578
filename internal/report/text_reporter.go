package report

import (
	"fmt"
	"io"
)

// TextReporter prints the summary as `Key: Value` lines
type TextReporter struct {
	W io.Writer
}

func (t *TextReporter) Report(summary Summary) error {
	_, err := fmt.Fprintf(t.W, "Total Row Count: %d\nRemoved Row Count: %d\nMalformed Row Count: %d\nWritten Row Count: %d\nMax Price: %s\nMin Price: %s\n",
		summary.TotalRowCount,
		summary.RemovedRowCount,
		summary.MalformedRowCount,
		summary.WrittenRowCount,
		FormatPrice(summary.MaxPrice),
		FormatPrice(summary.MinPrice),
	)

	return err
}
