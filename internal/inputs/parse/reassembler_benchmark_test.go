package parse_test

import (
	"context"
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/inputs/parse"
	"github.com/sinkingpoint/feedpipe/internal/outputs"
	"github.com/sinkingpoint/feedpipe/internal/outputs/format"
)

func BenchmarkReassembler(b *testing.B) {
	stream := []byte{}
	for i := 0; i < 1000; i++ {
		stream = append(stream, productLine(fmt.Sprint(i), "Skiles", fmt.Sprintf("%d.00", i), "in stock")...)
		stream = append(stream, '\n')
	}

	conf := outputs.SendConfig{BatchSize: feed.DEFAULT_BATCH_SIZE, Formatter: &format.CSVFormatter{Separator: format.DEFAULT_CSV_SEPARATOR}}

	b.SetBytes(int64(len(stream)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sender := outputs.NewSenderFor("bench", outputs.NewStdOutputter(conf, ioutil.Discard))
		r := parse.NewReassembler(parse.NewDefaultRecordParser(), feed.NewAggregate(), sender)

		for start := 0; start < len(stream); start += 4096 {
			end := start + 4096
			if end > len(stream) {
				end = len(stream)
			}

			if _, err := r.Feed(context.Background(), stream[start:end]); err != nil {
				b.Fatal(err)
			}
		}

		if _, err := r.Finish(context.Background()); err != nil {
			b.Fatal(err)
		}
	}
}
