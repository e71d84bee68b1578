package report

import (
	"fmt"
	"strconv"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/pkg/errors"
)

var ErrNoJournal = errors.New("the systemd journal isn't available")

// JournaldReporter sends the summary to the systemd journal as one structured entry
type JournaldReporter struct{}

// JournalFields returns the fields the summary is logged with
func JournalFields(summary Summary) map[string]string {
	return map[string]string{
		"SYSLOG_IDENTIFIER":   "feedpipe",
		"TOTAL_ROW_COUNT":     strconv.Itoa(summary.TotalRowCount),
		"REMOVED_ROW_COUNT":   strconv.Itoa(summary.RemovedRowCount),
		"MALFORMED_ROW_COUNT": strconv.Itoa(summary.MalformedRowCount),
		"WRITTEN_ROW_COUNT":   strconv.Itoa(summary.WrittenRowCount),
		"MIN_PRICE":           FormatPrice(summary.MinPrice),
		"MAX_PRICE":           FormatPrice(summary.MaxPrice),
	}
}

func (j *JournaldReporter) Report(summary Summary) error {
	if !journal.Enabled() {
		return ErrNoJournal
	}

	msg := fmt.Sprintf("Processed %d rows, removed %d", summary.TotalRowCount, summary.RemovedRowCount)
	if err := journal.Send(msg, journal.PriInfo, JournalFields(summary)); err != nil {
		return errors.Wrap(err, "failed to send summary to the journal")
	}

	return nil
}
