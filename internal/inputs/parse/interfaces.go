package parse

import (
	"context"
	"fmt"

	"github.com/sinkingpoint/feedpipe/internal/feed"
)

// A LineDecoder turns one logical line into a record
type LineDecoder interface {
	Decode(line []byte) (*feed.Record, error)
}

// A RecordWriter is where the reassembler sends accepted records. terminate is false
// only for the last line of a stream that didn't end in a line terminator
type RecordWriter interface {
	QueueRecord(ctx context.Context, rec *feed.Record, terminate bool) error
	Flush(ctx context.Context, final bool) error
}

func GetDecoderFromString(s string) (LineDecoder, error) {
	switch s {
	case "", "json":
		return &JSONDecoder{}, nil
	}

	return nil, fmt.Errorf("no decoder named `%s` found", s)
}
