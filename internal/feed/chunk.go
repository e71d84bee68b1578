package feed

import (
	"sync"
)

const DEFAULT_CHUNK_SIZE = 64 * 1024

// Chunk is a buffer of raw bytes read from upstream. Its boundaries
// have nothing to do with line boundaries
type Chunk struct {
	Data []byte
}

type ChunkChannel = chan *Chunk

var chunkPool sync.Pool

// GetChunk returns an empty chunk with at least size bytes of capacity
func GetChunk(size int) (chunk *Chunk) {
	c := chunkPool.Get()
	if c == nil {
		c = &Chunk{
			Data: make([]byte, 0, size),
		}
	}

	chunk = c.(*Chunk)
	if cap(chunk.Data) < size {
		chunk.Data = make([]byte, 0, size)
	}

	chunk.Data = chunk.Data[:0]

	return chunk
}

// ChunkOf copies the given bytes into a pooled chunk
func ChunkOf(data []byte) *Chunk {
	chunk := GetChunk(len(data))
	chunk.Data = append(chunk.Data, data...)

	return chunk
}

// PutChunk returns the chunk to the pool. The caller must not hold on to chunk.Data
func PutChunk(c *Chunk) {
	chunkPool.Put(c)
}
