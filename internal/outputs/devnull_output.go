package outputs

import (
	"context"
	"fmt"
)

type DevNullOutput struct {
	SendConfig
	BytesWritten int
}

func (d *DevNullOutput) GetSendConfig() SendConfig {
	return d.SendConfig
}

func (d *DevNullOutput) Write(p []byte) (int, error) {
	d.BytesWritten += len(p)
	return len(p), nil
}

func (d *DevNullOutput) Commit(ctx context.Context) error {
	return nil
}

func (d *DevNullOutput) Abort(ctx context.Context) error {
	return nil
}

func init() {
	outputsRegistry.Register("devnull", func(rawConf map[string]string) (interface{}, error) {
		return NewSendConfigFromRaw(rawConf)
	}, func(conf interface{}) (Outputter, error) {
		if c, ok := conf.(SendConfig); ok {
			return &DevNullOutput{SendConfig: c}, nil
		}

		return nil, fmt.Errorf("invalid config passed to devnull output")
	})
}
