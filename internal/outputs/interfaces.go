package outputs

import (
	"context"
	"io"
)

// A Destination receives the formatted bytes of a run. Nothing written to it is
// considered published until Commit returns; Abort throws it away where the destination allows it
type Destination interface {
	io.Writer
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
}

// An Outputter is a Destination that knows how its records should be sent
type Outputter interface {
	Destination
	GetSendConfig() SendConfig
}
