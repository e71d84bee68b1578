package format

import (
	"strings"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

const DEFAULT_CSV_SEPARATOR = ", "

// CSVFormatter joins field names and values with Separator.
// Values are not quoted or escaped, so a value containing the separator will shift columns
type CSVFormatter struct {
	Separator string
}

func (c *CSVFormatter) Header(rec *feed.Record) ([]byte, error) {
	return []byte(strings.Join(rec.Names(), c.Separator)), nil
}

func (c *CSVFormatter) Format(rec *feed.Record) ([]byte, error) {
	return []byte(strings.Join(rec.Values(), c.Separator)), nil
}
