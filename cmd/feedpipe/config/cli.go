package config

import (
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/sinkingpoint/feedpipe/internal/feed"
	"github.com/sinkingpoint/feedpipe/internal/inputs"
	"github.com/sinkingpoint/feedpipe/internal/outputs"
)

const STDOUT_PATH = "-"

type RunCommand struct {
	Input       string `help:"The feed to read. gzip is detected automatically" default:"${default_input}" short:"i"`
	InputFormat string `help:"The format of the input feed" enum:"csv,jsonl" default:"csv"`
	Output      string `help:"Where to write the cleaned feed. A .gz suffix compresses it, - writes to stdout" default:"${default_output}" short:"o"`
	Config      string `help:"A DOT file describing the pipeline. Overrides --input and --output" type:"existingfile" optional:""`
	ChunkSize   int    `help:"The number of bytes to read from the input at a time" default:"${default_chunk_size}"`
	Report      string `help:"How to report the run summary" enum:"text,json,journald" default:"text"`

	MetricsAddress    string  `help:"The Address to serve Prometheus Metrics on. Empty disables metrics" default:""`
	TraceSamplingRate float64 `help:"The rate at which to sample traces, between 0 and 1" default:"0"`
	TraceDebug        bool    `help:"Print spans to stderr instead of sending them"`
}

var CLI struct {
	LogLevel string `help:"The minimum level to log at" enum:"trace,debug,info,warn,error" default:"info"`

	Run RunCommand `cmd:"" help:"Clean a product feed" default:"1"`
}

// Vars holds the values interpolated into CLI defaults
func Vars() kong.Vars {
	return kong.Vars{
		"default_input":      inputs.DEFAULT_INPUT_PATH,
		"default_output":     outputs.DEFAULT_OUTPUT_PATH,
		"default_chunk_size": strconv.Itoa(feed.DEFAULT_CHUNK_SIZE),
	}
}
