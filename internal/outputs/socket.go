package outputs

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const DEFAULT_SOCKET_PATH = "/run/feedpipe/feedpipe.sock"
const DEFAULT_DIAL_TIMEOUT = 10 * time.Second

// SocketOutputConfig is the config of the `unix` and `tcp` outputs. TLS only applies to tcp
type SocketOutputConfig struct {
	SendConfig
	Network     string
	Destination string
	DialTimeout time.Duration
	TLS         *TLSConfig
}

func NewSocketOutputConfigFromRaw(network string, rawConf map[string]string) (SocketOutputConfig, error) {
	sendConf, err := NewSendConfigFromRaw(rawConf)
	if err != nil {
		return SocketOutputConfig{}, err
	}

	conf := SocketOutputConfig{
		SendConfig:  sendConf,
		Network:     network,
		Destination: rawConf["destination"],
		DialTimeout: DEFAULT_DIAL_TIMEOUT,
	}

	if conf.Destination == "" {
		if network != "unix" {
			return SocketOutputConfig{}, fmt.Errorf("missing `destination` required for %s output", network)
		}

		conf.Destination = DEFAULT_SOCKET_PATH
	}

	if raw, ok := rawConf["dial_timeout"]; ok {
		conf.DialTimeout, err = time.ParseDuration(raw)
		if err != nil || conf.DialTimeout <= 0 {
			return SocketOutputConfig{}, fmt.Errorf("invalid dial_timeout `%s` - expected a positive duration, e.g. 5s", raw)
		}
	}

	tlsConf, err := NewTLSConfigFromRaw(rawConf)
	if err != nil {
		return SocketOutputConfig{}, err
	}

	if tlsConf.IsEnabled() && network != "tcp" {
		return SocketOutputConfig{}, fmt.Errorf("TLS is only supported for tcp outputs")
	}

	conf.TLS = &tlsConf
	return conf, nil
}

// SocketOutput streams the cleaned feed to a unix or tcp socket. The connection is
// made on the first write. Bytes that have been sent can't be taken back, so Abort just hangs up
type SocketOutput struct {
	conf SocketOutputConfig
	conn net.Conn
}

func NewSocketOutput(c SocketOutputConfig) *SocketOutput {
	return &SocketOutput{
		conf: c,
	}
}

func (s *SocketOutput) dial() (net.Conn, error) {
	dialer := &net.Dialer{Timeout: s.conf.DialTimeout}
	if tlsConf := s.conf.TLS.ClientConfig(); tlsConf != nil {
		return tls.DialWithDialer(dialer, s.conf.Network, s.conf.Destination, tlsConf)
	}

	return dialer.Dial(s.conf.Network, s.conf.Destination)
}

func (s *SocketOutput) GetSendConfig() SendConfig {
	return s.conf.SendConfig
}

func (s *SocketOutput) Write(p []byte) (int, error) {
	if s.conn == nil {
		conn, err := s.dial()
		if err != nil {
			return 0, errors.Wrapf(err, "failed to connect to %s socket `%s`", s.conf.Network, s.conf.Destination)
		}

		log.Debug().Str("network", s.conf.Network).Str("destination", s.conf.Destination).Msg("Connected socket output")
		s.conn = conn
	}

	return s.conn.Write(p)
}

func (s *SocketOutput) hangUp() error {
	if s.conn == nil {
		return nil
	}

	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *SocketOutput) Commit(ctx context.Context) error {
	return s.hangUp()
}

func (s *SocketOutput) Abort(ctx context.Context) error {
	if s.conn != nil {
		log.Warn().Str("destination", s.conf.Destination).Msg("Aborting socket output - the receiver may have seen a partial feed")
	}

	return s.hangUp()
}

func init() {
	for _, network := range []string{"unix", "tcp"} {
		network := network
		outputsRegistry.Register(network, func(rawConf map[string]string) (interface{}, error) {
			return NewSocketOutputConfigFromRaw(network, rawConf)
		}, func(conf interface{}) (Outputter, error) {
			if c, ok := conf.(SocketOutputConfig); ok {
				return NewSocketOutput(c), nil
			}

			return nil, fmt.Errorf("invalid config passed to %s output", network)
		})
	}
}
