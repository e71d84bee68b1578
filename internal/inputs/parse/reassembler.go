package parse

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

var ErrFinished = errors.New("reassembler has already been finished")

// Reassembler turns a stream of arbitrarily sized chunks into logical lines.
// The only state carried between chunks is the pending fragment: the bytes after the
// last line terminator that haven't been terminated yet. Every line is parsed exactly
// once, no matter where the chunk boundaries fall.
//
// A Reassembler is not safe for concurrent use; chunks must be fed in stream order
type Reassembler struct {
	parser *RecordParser
	agg    *feed.Aggregate
	out    RecordWriter

	pending  []byte
	buf      []byte
	finished bool
}

func NewReassembler(parser *RecordParser, agg *feed.Aggregate, out RecordWriter) *Reassembler {
	return &Reassembler{
		parser: parser,
		agg:    agg,
		out:    out,
	}
}

// Pending returns a copy of the current unterminated fragment
func (r *Reassembler) Pending() []byte {
	return append([]byte(nil), r.pending...)
}

// Step is Feed when final is false, and Finish otherwise
func (r *Reassembler) Step(ctx context.Context, chunk []byte, final bool) (feed.Snapshot, error) {
	if final {
		return r.Finish(ctx)
	}

	return r.Feed(ctx, chunk)
}

// Feed processes every line completed by the given chunk. chunk is not retained
func (r *Reassembler) Feed(ctx context.Context, chunk []byte) (feed.Snapshot, error) {
	if r.finished {
		return r.agg.Snapshot(), ErrFinished
	}

	if len(chunk) == 0 {
		return r.agg.Snapshot(), nil
	}

	ctx, span := tracing.GetTracer().Start(ctx, "Reassembler.Feed")
	defer span.End()

	metrics.ChunksProcessed.Inc()

	r.buf = append(r.buf[:0], r.pending...)
	r.buf = append(r.buf, chunk...)
	text := r.buf

	// A trailing CR might be the first half of a CRLF split across chunks,
	// so it waits for the next chunk before it counts as a terminator
	heldCR := false
	if text[len(text)-1] == '\r' {
		text = text[:len(text)-1]
		heldCR = true
	}

	lines := 0
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\n' && c != '\r' {
			continue
		}

		if err := r.dispatch(ctx, text[start:i], true); err != nil {
			return r.agg.Snapshot(), err
		}

		lines += 1
		if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
			i++
		}

		start = i + 1
	}

	r.pending = append(r.pending[:0], text[start:]...)
	if heldCR {
		r.pending = append(r.pending, '\r')
	}

	span.SetAttributes(
		attribute.Int("chunk_size", len(chunk)),
		attribute.Int("lines", lines),
		attribute.Int("pending_size", len(r.pending)),
	)

	return r.agg.Snapshot(), nil
}

// Finish parses the pending fragment, if any, as the last line of the stream and
// flushes the output. The last line is written without a trailing newline.
// Calling Finish more than once is a no-op
func (r *Reassembler) Finish(ctx context.Context) (feed.Snapshot, error) {
	if r.finished {
		return r.agg.Snapshot(), nil
	}

	ctx, span := tracing.GetTracer().Start(ctx, "Reassembler.Finish")
	defer span.End()

	r.finished = true
	last := r.pending
	r.pending = nil

	span.SetAttributes(attribute.Int("pending_size", len(last)))

	if err := r.dispatch(ctx, last, false); err != nil {
		return r.agg.Snapshot(), err
	}

	if err := r.out.Flush(ctx, true); err != nil {
		return r.agg.Snapshot(), errors.Wrap(err, "failed to flush output")
	}

	return r.agg.Snapshot(), nil
}

func (r *Reassembler) dispatch(ctx context.Context, line []byte, terminate bool) error {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	result := r.parser.Parse(ctx, line, r.agg)
	if result.Verdict != ACCEPTED {
		return nil
	}

	if err := r.out.QueueRecord(ctx, result.Record, terminate); err != nil {
		return errors.Wrap(err, "failed to write record")
	}

	return nil
}
