package inputs

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const DEFAULT_SOCKET_PATH = "/run/feedpipe/feedpipe.sock"

type SocketInputConfig struct {
	Network     string
	Address     string
	Format      string
	Compression string
	ChunkSize   int
}

func NewSocketInputConfigFromRaw(network string, raw map[string]string) (SocketInputConfig, error) {
	// The stream settings are the same as for a file
	stream, err := NewFileInputConfigFromRaw(raw)
	if err != nil {
		return SocketInputConfig{}, err
	}

	conf := SocketInputConfig{
		Network:     network,
		Format:      stream.Format,
		Compression: stream.Compression,
		ChunkSize:   stream.ChunkSize,
	}

	switch network {
	case "unix":
		conf.Address = DEFAULT_SOCKET_PATH
		if path, ok := raw["socket_path"]; ok {
			conf.Address = path
		}
	case "tcp":
		addr, ok := raw["listen"]
		if !ok || addr == "" {
			return SocketInputConfig{}, fmt.Errorf("missing `listen` address in tcp input")
		}

		conf.Address = addr
	default:
		return SocketInputConfig{}, fmt.Errorf("BUG: unsupported network `%s` for SocketInput", network)
	}

	return conf, nil
}

// SocketInput listens on a socket and reads a single feed from the first connection
// made to it, e.g. `nc -U /run/feedpipe/feedpipe.sock < commerce-feed.csv.gz`
type SocketInput struct {
	conf  SocketInputConfig
	ready chan net.Addr
}

func NewSocketInput(conf SocketInputConfig) *SocketInput {
	if conf.ChunkSize <= 0 {
		conf.ChunkSize = feed.DEFAULT_CHUNK_SIZE
	}

	return &SocketInput{
		conf:  conf,
		ready: make(chan net.Addr, 1),
	}
}

// Ready returns a channel that receives the listening address once the input is accepting connections
func (s *SocketInput) Ready() <-chan net.Addr {
	return s.ready
}

func (s *SocketInput) Run(ctx context.Context, flushChan feed.ChunkChannel) error {
	ctx, span := tracing.GetTracer().Start(ctx, "SocketInput.Run")
	defer span.End()

	span.SetAttributes(
		attribute.String("network", s.conf.Network),
		attribute.String("address", s.conf.Address),
	)

	if s.conf.Network == "unix" {
		if _, err := os.Stat(s.conf.Address); err == nil {
			// Delete the existing socket so we can remake it
			log.Info().Str("socket_path", s.conf.Address).Msg("Cleaning up left behind socket")
			if err = os.Remove(s.conf.Address); err != nil {
				return errors.Wrap(err, "failed to remove old socket")
			}
		}
	}

	l, err := net.Listen(s.conf.Network, s.conf.Address)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on `%s`", s.conf.Address)
	}
	defer l.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Accept doesn't take a context, closing the listener is what unblocks it
	go func() {
		<-ctx.Done()
		l.Close()
	}()

	select {
	case s.ready <- l.Addr():
	default:
	}

	conn, err := l.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return errors.Wrap(err, "failed to accept connection")
	}
	defer conn.Close()

	// One feed per run
	l.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	log.Debug().Str("remote_addr", conn.RemoteAddr().String()).Str("format", s.conf.Format).Msg("Reading feed from connection")

	if err := ReadFeed(ctx, conn, s.conf.Format, s.conf.Compression, s.conf.ChunkSize, flushChan); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		return errors.Wrapf(err, "failed to read feed from `%s`", conn.RemoteAddr())
	}

	return nil
}

func init() {
	for _, network := range []string{"unix", "tcp"} {
		network := network
		inputsRegistry.Register(network, func(rawConf map[string]string) (interface{}, error) {
			return NewSocketInputConfigFromRaw(network, rawConf)
		}, func(conf interface{}) (Inputter, error) {
			if c, ok := conf.(SocketInputConfig); ok {
				return NewSocketInput(c), nil
			}

			return nil, fmt.Errorf("invalid config passed to %s input", network)
		})
	}
}
