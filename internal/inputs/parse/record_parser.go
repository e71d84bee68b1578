package parse

import (
	"bytes"
	"context"

	"github.com/rs/zerolog/log"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/filters"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
)

type Verdict int

const (
	ACCEPTED Verdict = iota
	MALFORMED
	REMOVED
	EMPTY
)

func (v Verdict) String() string {
	switch v {
	case ACCEPTED:
		return "accepted"
	case MALFORMED:
		return "malformed"
	case REMOVED:
		return "removed"
	case EMPTY:
		return "empty"
	}

	return "unknown"
}

type ParseResult struct {
	Record  *feed.Record
	Verdict Verdict

	// The name of the filter that removed the record, if Verdict is REMOVED
	DroppedBy string
}

// RecordParser decodes a single line and runs it through the filter chain,
// keeping the aggregate up to date as it goes
type RecordParser struct {
	decoder LineDecoder
	chain   []filters.Named
}

func NewRecordParser(decoder LineDecoder, chain []filters.Named) *RecordParser {
	if decoder == nil {
		decoder = &JSONDecoder{}
	}

	return &RecordParser{
		decoder: decoder,
		chain:   chain,
	}
}

// NewDefaultRecordParser returns a parser for JSON lines with the brand, availability and price filters
func NewDefaultRecordParser() *RecordParser {
	return NewRecordParser(&JSONDecoder{}, filters.DefaultChain())
}

func (p *RecordParser) Parse(ctx context.Context, line []byte, agg *feed.Aggregate) ParseResult {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return ParseResult{Verdict: EMPTY}
	}

	agg.TotalRowCount += 1
	metrics.RowsSeen.Inc()

	rec, err := p.decoder.Decode(line)
	if err != nil {
		agg.MalformedRowCount += 1
		metrics.RowsMalformed.Inc()
		log.Debug().Err(err).Int("row", agg.TotalRowCount).Msg("Dropping malformed line")
		return ParseResult{Verdict: MALFORMED}
	}

	for _, filter := range p.chain {
		shouldDrop, err := filter.Filter.Filter(ctx, rec)
		if err != nil {
			log.Warn().Err(err).Str("filter_name", filter.Name).Int("row", agg.TotalRowCount).Msg("Filter failed")
		}

		if shouldDrop {
			agg.RemovedRowCount += 1
			metrics.FilterDropped.WithLabelValues(filter.Name).Inc()
			return ParseResult{Verdict: REMOVED, DroppedBy: filter.Name}
		}
	}

	agg.AcceptedRowCount += 1
	if price, ok := rec.Price(); ok {
		agg.ObservePrice(price)
	}

	return ParseResult{Record: rec, Verdict: ACCEPTED}
}
