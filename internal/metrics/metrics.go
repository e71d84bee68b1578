package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	RowsSeen = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedpipe",
		Name:      "rows_seen_total",
		Help:      "The number of non-empty lines handed to the record parser",
	})

	RowsMalformed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedpipe",
		Name:      "rows_malformed_total",
		Help:      "The number of lines that could not be decoded into a record",
	})

	FilterDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedpipe",
		Name:      "filter_dropped_total",
		Help:      "The number of records dropped by the given filter",
	}, []string{
		"filter_name",
	})

	RowsWritten = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "feedpipe",
		Name:      "rows_written_total",
		Help:      "The number of records written to the given output",
	}, []string{
		"output_name",
	})

	ChunksProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedpipe",
		Name:      "chunks_processed_total",
		Help:      "The number of upstream chunks fed through the reassembler",
	})

	BytesRead = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "feedpipe",
		Name:      "bytes_read_total",
		Help:      "The number of bytes read from the input after decompression and CSV to JSON lines conversion",
	})

	Price = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "feedpipe",
		Name:      "price",
		Help:      "The min and max price of the accepted records in the last run",
	}, []string{
		"bound",
	})
)

func init() {
	prometheus.MustRegister(RowsSeen, RowsMalformed, FilterDropped, RowsWritten, ChunksProcessed, BytesRead, Price)
}

// InitMetrics serves the registered metrics on the given address in the background.
// An empty address disables the endpoint
func InitMetrics(listenAddress string) {
	if listenAddress == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(listenAddress, mux); err != nil {
			log.Warn().Err(err).Str("address", listenAddress).Msg("Metrics server exited")
		}
	}()
}
