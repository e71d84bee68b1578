package inputs_test

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/inputs"
)

func TestSocketInput(t *testing.T) {
	tests := []struct {
		network string
		raw     map[string]string
	}{
		{"unix", map[string]string{"socket_path": filepath.Join(t.TempDir(), "feedpipe.sock"), "format": "jsonl"}},
		{"tcp", map[string]string{"listen": "127.0.0.1:0", "format": "csv", "compression": "none"}},
	}

	for _, test := range tests {
		input, err := inputs.Construct(test.network, test.raw)
		if err != nil {
			t.Fatalf("Failed to construct %s input: %s", test.network, err)
		}

		socketInput := input.(*inputs.SocketInput)
		body := `{"id":"1"}` + "\n"
		if test.raw["format"] == "csv" {
			body = "id\n1\n"
		}

		go func() {
			addr := <-socketInput.Ready()
			conn, err := net.Dial(addr.Network(), addr.String())
			if err != nil {
				return
			}

			conn.Write([]byte(body))
			conn.Close()
		}()

		data, _, err := collect(t, input)
		if err != nil {
			t.Fatalf("%s input failed: %s", test.network, err)
		}

		if data != `{"id":"1"}`+"\n" {
			t.Fatalf("%s: unexpected data %q", test.network, data)
		}
	}
}

func TestSocketInputCancelled(t *testing.T) {
	conf, err := inputs.NewSocketInputConfigFromRaw("tcp", map[string]string{"listen": "127.0.0.1:0"})
	if err != nil {
		t.Fatal(err)
	}

	input := inputs.NewSocketInput(conf)
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() {
		errChan <- input.Run(ctx, make(feed.ChunkChannel, 1))
	}()

	<-input.Ready()
	cancel()

	select {
	case err := <-errChan:
		if err != context.Canceled {
			t.Fatalf("Expected the input to be cancelled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Input didn't stop after being cancelled")
	}
}

func TestSocketInputConfigErrors(t *testing.T) {
	if _, err := inputs.Construct("tcp", map[string]string{}); err == nil {
		t.Error("Expected an error for a tcp input without a listen address")
	}

	if _, err := inputs.Construct("unix", map[string]string{"format": "xml"}); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
