package config

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/sinkingpoint/feedpipe/internal/filters"
	"github.com/sinkingpoint/feedpipe/internal/inputs"
	"github.com/sinkingpoint/feedpipe/internal/inputs/parse"
	"github.com/sinkingpoint/feedpipe/internal/outputs"
	"github.com/sinkingpoint/feedpipe/internal/pipeline"
)

const TYPE_ATTR = "type"

// The graph attribute that picks the line decoder
const DECODER_ATTR = "decoder"

func LoadConfigFile(path string) (*pipeline.Pipeline, error) {
	body, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config `%s`", path)
	}

	return LoadConfigString(string(body))
}

func LoadConfigString(body string) (*pipeline.Pipeline, error) {
	configGraph, err := ParseConfigGraph(body)
	if err != nil {
		return nil, err
	}

	return configGraph.ToPipeline()
}

func ParseConfigGraph(body string) (*ConfigGraph, error) {
	graphAst, err := gographviz.ParseString(body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse pipeline config")
	}

	configGraph := newConfigGraph()
	if err := gographviz.Analyse(graphAst, &configGraph); err != nil {
		return nil, err
	}

	if configGraph.err != nil {
		return nil, configGraph.err
	}

	return &configGraph, nil
}

// ToPipeline constructs every node of the chain. The first node is the input, the last
// the output, and everything between is a filter, run in chain order
func (c *ConfigGraph) ToPipeline() (*pipeline.Pipeline, error) {
	chain, err := c.chain()
	if err != nil {
		return nil, err
	}

	types := make([]string, len(chain))
	for i, name := range chain {
		ty, ok := c.nodes[name].attrs[TYPE_ATTR]
		if !ok || ty == "" {
			return nil, fmt.Errorf("node `%s` is missing a `type` attribute", name)
		}

		types[i] = strings.ToLower(ty)
	}

	inputName, outputName := chain[0], chain[len(chain)-1]
	if !inputs.HasConstructorFor(types[0]) {
		return nil, fmt.Errorf("node `%s` starts the pipeline, but `%s` isn't an input type", inputName, types[0])
	}

	if !outputs.HasConstructorFor(types[len(types)-1]) {
		return nil, fmt.Errorf("node `%s` ends the pipeline, but `%s` isn't an output type", outputName, types[len(types)-1])
	}

	decoder, err := parse.GetDecoderFromString(c.attrs[DECODER_ATTR])
	if err != nil {
		return nil, err
	}

	filterChain := make([]filters.Named, 0, len(chain)-2)
	for i := 1; i < len(chain)-1; i++ {
		if !filters.HasConstructorFor(types[i]) {
			return nil, fmt.Errorf("node `%s` is in the middle of the pipeline, but `%s` isn't a filter type", chain[i], types[i])
		}

		filter, err := filters.Construct(types[i], c.nodes[chain[i]].attrs)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to construct filter `%s`", chain[i])
		}

		filterChain = append(filterChain, filters.Named{Name: chain[i], Filter: filter})
	}

	input, err := inputs.Construct(types[0], c.nodes[inputName].attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct input `%s`", inputName)
	}

	// Last, as some outputs create their destination up front
	output, err := outputs.Construct(types[len(types)-1], c.nodes[outputName].attrs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct output `%s`", outputName)
	}

	if len(filterChain) == 0 {
		log.Warn().Msg("No filters in this pipeline. Every record will be passed through")
	}

	log.Debug().Str("chain", c.String()).Msg("Loaded pipeline config")

	return pipeline.NewPipeline(input, parse.NewRecordParser(decoder, filterChain), outputName, output), nil
}

// FromFlags builds the default pipeline: the given input, the brand, availability
// and price filters, and the given output
func FromFlags(cmd RunCommand) (*pipeline.Pipeline, error) {
	input := inputs.NewFileInput(inputs.FileInputConfig{
		Path:        cmd.Input,
		Format:      cmd.InputFormat,
		Compression: inputs.COMPRESSION_AUTO,
		ChunkSize:   cmd.ChunkSize,
	})

	var output outputs.Outputter
	var err error
	if cmd.Output == STDOUT_PATH {
		output, err = outputs.Construct("stdout", nil)
	} else {
		output, err = outputs.Construct("file", map[string]string{
			"path": cmd.Output,
		})
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to construct output `%s`", cmd.Output)
	}

	return pipeline.NewPipeline(input, parse.NewDefaultRecordParser(), cmd.Output, output), nil
}
