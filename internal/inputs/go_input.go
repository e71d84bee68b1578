package inputs

import (
	"context"

	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
)

// GoInput is an input fed from Go code, mostly for tests and benchmarks.
// Every Enqueue becomes exactly one chunk; Close ends the stream
type GoInput struct {
	c chan []byte
}

func NewGoInput() *GoInput {
	return &GoInput{
		c: make(chan []byte),
	}
}

func (s *GoInput) Close() {
	close(s.c)
}

func (s *GoInput) Enqueue(data []byte) {
	s.c <- data
}

func (s *GoInput) Run(ctx context.Context, flushChan feed.ChunkChannel) error {
	_, span := tracing.GetTracer().Start(ctx, "GoInput.Run")
	defer span.End()

	for {
		select {
		case data, ok := <-s.c:
			if !ok {
				return nil
			}

			select {
			case flushChan <- feed.ChunkOf(data):
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
