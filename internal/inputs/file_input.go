package inputs

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const DEFAULT_INPUT_PATH = "commerce-feed.csv.gz"

const (
	FORMAT_CSV   = "csv"
	FORMAT_JSONL = "jsonl"

	COMPRESSION_AUTO = "auto"
	COMPRESSION_GZIP = "gzip"
	COMPRESSION_NONE = "none"
)

var gzipMagic = []byte{0x1f, 0x8b}

type FileInputConfig struct {
	Path        string
	Format      string
	Compression string
	ChunkSize   int
}

func NewFileInputConfigFromRaw(raw map[string]string) (FileInputConfig, error) {
	conf := FileInputConfig{
		Path:        DEFAULT_INPUT_PATH,
		Format:      FORMAT_CSV,
		Compression: COMPRESSION_AUTO,
		ChunkSize:   feed.DEFAULT_CHUNK_SIZE,
	}

	if path, ok := raw["path"]; ok {
		conf.Path = path
	}

	if format, ok := raw["format"]; ok {
		switch format {
		case FORMAT_CSV, FORMAT_JSONL:
			conf.Format = format
		default:
			return FileInputConfig{}, fmt.Errorf("invalid format `%s` in FileInput - expected csv or jsonl", format)
		}
	}

	if compression, ok := raw["compression"]; ok {
		switch compression {
		case COMPRESSION_AUTO, COMPRESSION_GZIP, COMPRESSION_NONE:
			conf.Compression = compression
		default:
			return FileInputConfig{}, fmt.Errorf("invalid compression `%s` in FileInput - expected auto, gzip or none", compression)
		}
	}

	if sizeStr, ok := raw["chunk_size"]; ok {
		size, err := strconv.Atoi(sizeStr)
		if err != nil {
			return FileInputConfig{}, fmt.Errorf("invalid chunk_size in FileInput - expected an int, got `%s`", sizeStr)
		}

		if size <= 0 {
			return FileInputConfig{}, fmt.Errorf("invalid chunk_size in FileInput - expected a positive int, got %d", size)
		}

		conf.ChunkSize = size
	}

	return conf, nil
}

// FileInput reads a feed file, decompressing it and converting it from CSV as configured
type FileInput struct {
	conf FileInputConfig
}

func NewFileInput(conf FileInputConfig) *FileInput {
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = feed.DEFAULT_CHUNK_SIZE
	}

	return &FileInput{
		conf: conf,
	}
}

func (f *FileInput) Run(ctx context.Context, flushChan feed.ChunkChannel) error {
	ctx, span := tracing.GetTracer().Start(ctx, "FileInput.Run")
	defer span.End()

	span.SetAttributes(
		attribute.String("path", f.conf.Path),
		attribute.String("format", f.conf.Format),
		attribute.String("compression", f.conf.Compression),
	)

	file, err := os.Open(f.conf.Path)
	if err != nil {
		return errors.Wrapf(err, "failed to open input `%s`", f.conf.Path)
	}
	defer file.Close()

	log.Debug().Str("path", f.conf.Path).Str("format", f.conf.Format).Int("chunk_size", f.conf.ChunkSize).Msg("Reading input")

	return ReadFeed(ctx, file, f.conf.Format, f.conf.Compression, f.conf.ChunkSize, flushChan)
}

// ReadFeed decompresses r and converts it to JSON lines as needed, sending the result on in chunks
func ReadFeed(ctx context.Context, r io.Reader, format, compression string, chunkSize int, flushChan feed.ChunkChannel) error {
	stream, err := Decompress(r, compression)
	if err != nil {
		return errors.Wrap(err, "failed to decompress input")
	}
	defer stream.Close()

	if format == FORMAT_CSV {
		converted := CSVToJSONLines(stream)
		defer converted.Close()
		stream = converted
	}

	return ReadChunks(ctx, stream, chunkSize, flushChan)
}

// Decompress wraps r according to the given compression. auto sniffs the gzip magic number
func Decompress(r io.Reader, compression string) (io.ReadCloser, error) {
	buffered := bufio.NewReader(r)

	switch compression {
	case COMPRESSION_NONE:
		return io.NopCloser(buffered), nil
	case COMPRESSION_GZIP:
		return gzip.NewReader(buffered)
	case COMPRESSION_AUTO, "":
		magic, err := buffered.Peek(len(gzipMagic))
		if err != nil && err != io.EOF {
			return nil, err
		}

		if len(magic) == len(gzipMagic) && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
			return gzip.NewReader(buffered)
		}

		return io.NopCloser(buffered), nil
	}

	return nil, fmt.Errorf("unknown compression `%s`", compression)
}

func init() {
	inputsRegistry.Register("file", func(rawConf map[string]string) (interface{}, error) {
		return NewFileInputConfigFromRaw(rawConf)
	}, func(conf interface{}) (Inputter, error) {
		if c, ok := conf.(FileInputConfig); ok {
			return NewFileInput(c), nil
		}

		return nil, fmt.Errorf("invalid config passed to file input")
	})
}
