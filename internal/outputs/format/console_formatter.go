package format

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

const (
	TERM_RESET = "\033[0m"
	TERM_GREEN = "\033[32m"
	TERM_CYAN  = "\033[36m"
)

// ConsoleFormatter is for eyeballing a feed in a terminal. Each line is the record
// id, then key=value for every other field. Null values print as null, unquoted
type ConsoleFormatter struct {
	color bool
}

func (c *ConsoleFormatter) paint(b *strings.Builder, s, color string) {
	if !c.color || runtime.GOOS == "windows" {
		b.WriteString(s)
		return
	}

	b.WriteString(color)
	b.WriteString(s)
	b.WriteString(TERM_RESET)
}

func (c *ConsoleFormatter) Header(rec *feed.Record) ([]byte, error) {
	return nil, nil
}

func (c *ConsoleFormatter) Format(rec *feed.Record) ([]byte, error) {
	var b strings.Builder

	if id, ok := rec.Get(feed.ID_FIELD); ok {
		c.paint(&b, id.Value, TERM_CYAN)
	}

	for _, f := range rec.Fields {
		if f.Name == feed.ID_FIELD {
			continue
		}

		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		c.paint(&b, f.Name, TERM_GREEN)
		b.WriteByte('=')
		if f.Null {
			b.WriteString("null")
		} else {
			b.WriteString(strconv.Quote(f.Value))
		}
	}

	return []byte(b.String()), nil
}
