package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

// A Formatter renders records as bytes. Neither Header nor Format adds a line terminator
type Formatter interface {
	// Header returns the line to write before the first record, or nil for none
	Header(rec *feed.Record) ([]byte, error)
	Format(rec *feed.Record) ([]byte, error)
}

type formatterBuilder = func(args map[string]string) (Formatter, error)

var formatters = map[string]formatterBuilder{
	"csv": func(args map[string]string) (Formatter, error) {
		separator := args["separator"]
		if separator == "" {
			separator = DEFAULT_CSV_SEPARATOR
		}

		return &CSVFormatter{Separator: separator}, nil
	},
	"json": func(args map[string]string) (Formatter, error) {
		return &JSONFormatter{}, nil
	},
	"console": func(args map[string]string) (Formatter, error) {
		raw, ok := args["color"]
		if !ok {
			return &ConsoleFormatter{}, nil
		}

		color, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool `%s` for color in console output - expected true or false", raw)
		}

		return &ConsoleFormatter{color: color}, nil
	},
}

// GetFormatterFromString builds the named formatter, defaulting to csv. args are the
// raw attributes of the output node
func GetFormatterFromString(name string, args map[string]string) (Formatter, error) {
	if name == "" {
		name = "csv"
	}

	build, ok := formatters[strings.ToLower(name)]
	if !ok {
		known := make([]string, 0, len(formatters))
		for n := range formatters {
			known = append(known, n)
		}

		sort.Strings(known)
		return nil, fmt.Errorf("no formatter named `%s` (known formatters: %s)", name, strings.Join(known, ", "))
	}

	if args == nil {
		args = map[string]string{}
	}

	return build(args)
}
