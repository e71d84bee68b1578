package outputs

import (
	"context"
	"fmt"
	"io"
	"os"
)

// StdOutputter writes the cleaned feed to stdout, or any other writer it's given
type StdOutputter struct {
	SendConfig
	w io.Writer
}

func NewStdOutputter(conf SendConfig, w io.Writer) *StdOutputter {
	if w == nil {
		w = os.Stdout
	}

	return &StdOutputter{
		SendConfig: conf,
		w:          w,
	}
}

func (s *StdOutputter) GetSendConfig() SendConfig {
	return s.SendConfig
}

func (s *StdOutputter) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *StdOutputter) Commit(ctx context.Context) error {
	return nil
}

func (s *StdOutputter) Abort(ctx context.Context) error {
	return nil
}

func init() {
	outputsRegistry.Register("stdout", func(rawConf map[string]string) (interface{}, error) {
		return NewSendConfigFromRaw(rawConf)
	}, func(conf interface{}) (Outputter, error) {
		if c, ok := conf.(SendConfig); ok {
			return NewStdOutputter(c, os.Stdout), nil
		}

		return nil, fmt.Errorf("invalid config passed to stdout output")
	})
}
