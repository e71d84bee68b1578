package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/inputs"
	"github.com/sinkingpoint/feedpipe/internal/inputs/parse"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
	"github.com/sinkingpoint/feedpipe/internal/outputs"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const CHUNK_CHANNEL_SIZE = 10

// Pipeline moves one feed from its input, through the parser, into its output
type Pipeline struct {
	Input      inputs.Inputter
	Parser     *parse.RecordParser
	OutputName string
	Output     outputs.Outputter
}

// Result is what's known about a run once it's over
type Result struct {
	Aggregate feed.Aggregate
	Written   int
	Duration  time.Duration
}

func NewPipeline(input inputs.Inputter, parser *parse.RecordParser, outputName string, output outputs.Outputter) *Pipeline {
	if parser == nil {
		parser = parse.NewDefaultRecordParser()
	}

	return &Pipeline{
		Input:      input,
		Parser:     parser,
		OutputName: outputName,
		Output:     output,
	}
}

// Run processes the whole feed. The input runs in its own goroutine, but chunks are
// handled one at a time in the order they were read, so all parsing state stays on this goroutine.
// Any failure aborts the output and is returned; a run either commits everything or nothing
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "Pipeline.Run")
	defer span.End()

	start := time.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	agg := feed.NewAggregate()
	sender := outputs.NewSenderFor(p.OutputName, p.Output)
	reassembler := parse.NewReassembler(p.Parser, agg, sender)

	// A note on ordering here:
	// 1. The input sends chunks until it's done or the context is cancelled, then the channel is closed
	// 2. We keep draining the channel after a failure so that the input never blocks on a send
	// 3. Only once the input has exited do we decide between Finish+Commit and Abort
	chunks := make(feed.ChunkChannel, CHUNK_CHANNEL_SIZE)
	inputErr := make(chan error, 1)
	go func() {
		defer close(chunks)
		inputErr <- p.Input.Run(ctx, chunks)
	}()

	var runErr error
	for chunk := range chunks {
		if runErr == nil {
			if _, err := reassembler.Feed(ctx, chunk.Data); err != nil {
				runErr = err
				cancel()
			}
		}

		feed.PutChunk(chunk)
	}

	if err := <-inputErr; err != nil && runErr == nil {
		runErr = errors.Wrap(err, "input failed")
	}

	if runErr == nil {
		_, runErr = reassembler.Finish(ctx)
	}

	result := Result{
		Aggregate: *agg,
		Written:   sender.Written(),
		Duration:  time.Since(start),
	}

	span.SetAttributes(
		attribute.Int("total_rows", agg.TotalRowCount),
		attribute.Int("removed_rows", agg.RemovedRowCount),
		attribute.Int("malformed_rows", agg.MalformedRowCount),
		attribute.Int("written_rows", result.Written),
	)

	if runErr != nil {
		if err := p.Output.Abort(context.Background()); err != nil {
			log.Warn().Err(err).Str("output_name", p.OutputName).Msg("Failed to abort output")
		}

		span.RecordError(runErr)
		return result, runErr
	}

	if err := p.Output.Commit(ctx); err != nil {
		return result, errors.Wrapf(err, "failed to commit output `%s`", p.OutputName)
	}

	if min, max, ok := agg.PriceRange(); ok {
		metrics.Price.WithLabelValues("min").Set(min)
		metrics.Price.WithLabelValues("max").Set(max)
	}

	log.Info().
		Int("total_rows", agg.TotalRowCount).
		Int("removed_rows", agg.RemovedRowCount).
		Int("malformed_rows", agg.MalformedRowCount).
		Int("written_rows", result.Written).
		Dur("duration", result.Duration).
		Msg("Feed processed")

	return result, nil
}
