package inputs

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
)

// An Inputter is a thing that is able to read line delimited JSON from somewhere and
// send it on in chunks. Chunks must be sent in stream order. Run returns nil once the
// stream has been fully read, and the first error otherwise. It does not close the channel
type Inputter interface {
	Run(ctx context.Context, flushChan feed.ChunkChannel) error
}

// ReadChunks reads r until EOF, sending whatever each Read returns as a chunk
func ReadChunks(ctx context.Context, r io.Reader, chunkSize int, flushChan feed.ChunkChannel) error {
	if chunkSize <= 0 {
		chunkSize = feed.DEFAULT_CHUNK_SIZE
	}

	for {
		chunk := feed.GetChunk(chunkSize)
		n, err := r.Read(chunk.Data[:chunkSize])
		if n > 0 {
			chunk.Data = chunk.Data[:n]
			metrics.BytesRead.Add(float64(n))

			select {
			case flushChan <- chunk:
			case <-ctx.Done():
				feed.PutChunk(chunk)
				return ctx.Err()
			}
		} else {
			feed.PutChunk(chunk)
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return errors.Wrap(err, "failed to read input")
		}
	}
}
