package outputs

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
	"github.com/sinkingpoint/feedpipe/internal/outputs/format"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

type SendConfig struct {
	// The number of records to buffer before writing them to the destination
	BatchSize int
	Formatter format.Formatter
}

func NewSendConfigFromRaw(rawConf map[string]string) (SendConfig, error) {
	conf := SendConfig{
		BatchSize: feed.DEFAULT_BATCH_SIZE,
	}

	if batchSizeStr, ok := rawConf["batch_size"]; ok {
		val, err := strconv.Atoi(batchSizeStr)
		if err != nil {
			return SendConfig{}, fmt.Errorf("invalid batch_size - expected an int, got `%s`", batchSizeStr)
		}

		if val <= 0 {
			return SendConfig{}, fmt.Errorf("invalid batch_size - expected a positive int, got %d", val)
		}

		conf.BatchSize = val
	}

	formatter, err := format.GetFormatterFromString(rawConf["format"], rawConf)
	if err != nil {
		return SendConfig{}, err
	}

	conf.Formatter = formatter

	return conf, nil
}

// Sender sits between the reassembler and a Destination. It writes the header line
// exactly once, before the first record, and keeps records in the order they were queued
type Sender struct {
	SendConfig
	name string
	dest Destination

	buffer        bytes.Buffer
	buffered      int
	headerWritten bool
	written       int
}

func NewSender(name string, conf SendConfig, dest Destination) *Sender {
	if conf.BatchSize <= 0 {
		conf.BatchSize = feed.DEFAULT_BATCH_SIZE
	}

	if conf.Formatter == nil {
		conf.Formatter = &format.CSVFormatter{Separator: format.DEFAULT_CSV_SEPARATOR}
	}

	return &Sender{
		SendConfig: conf,
		name:       name,
		dest:       dest,
	}
}

// NewSenderFor builds a Sender using the send config of the given outputter
func NewSenderFor(name string, out Outputter) *Sender {
	return NewSender(name, out.GetSendConfig(), out)
}

func (s *Sender) HeaderWritten() bool {
	return s.headerWritten
}

// Written returns the number of records handed to the destination so far
func (s *Sender) Written() int {
	return s.written
}

// QueueRecord formats the record into the buffer, flushing as necessary.
// The record is followed by a newline only if terminate is set
func (s *Sender) QueueRecord(ctx context.Context, rec *feed.Record, terminate bool) error {
	if !s.headerWritten {
		header, err := s.Formatter.Header(rec)
		if err != nil {
			return errors.Wrap(err, "failed to format header")
		}

		if header != nil {
			s.buffer.Write(header)
			s.buffer.WriteByte('\n')
		}

		s.headerWritten = true
	}

	data, err := s.Formatter.Format(rec)
	if err != nil {
		return errors.Wrap(err, "failed to format record")
	}

	s.buffer.Write(data)
	if terminate {
		s.buffer.WriteByte('\n')
	}

	s.buffered += 1

	return s.Flush(ctx, false)
}

// Flush writes the buffer to the destination once it holds a full batch, or always if final is set.
// Errors are returned as is; there are no retries
func (s *Sender) Flush(ctx context.Context, final bool) error {
	if !final && s.buffered < s.BatchSize {
		return nil
	}

	if s.buffer.Len() == 0 {
		return nil
	}

	_, span := tracing.GetTracer().Start(ctx, "Sender.Flush")
	defer span.End()

	span.SetAttributes(
		attribute.Bool("final", final),
		attribute.Int("buffered_records", s.buffered),
		attribute.Int("buffer_size", s.buffer.Len()),
	)

	if _, err := s.dest.Write(s.buffer.Bytes()); err != nil {
		return errors.Wrapf(err, "failed to write to output `%s`", s.name)
	}

	metrics.RowsWritten.WithLabelValues(s.name).Add(float64(s.buffered))
	s.written += s.buffered
	s.buffered = 0
	s.buffer.Reset()

	return nil
}
