package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sinkingpoint/feedpipe/cmd/feedpipe/config"
	"github.com/sinkingpoint/feedpipe/internal/metrics"
	"github.com/sinkingpoint/feedpipe/internal/pipeline"
	"github.com/sinkingpoint/feedpipe/internal/report"
	"github.com/sinkingpoint/feedpipe/internal/tracing"
)

func main() {
	ctx := kong.Parse(&config.CLI, kong.Name("feedpipe"), kong.Description("Cleans product feeds"), config.Vars())

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(config.CLI.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", config.CLI.LogLevel).Msg("Invalid log level")
	}

	zerolog.SetGlobalLevel(level)

	switch ctx.Command() {
	case "run":
		if err := run(config.CLI.Run); err != nil {
			log.Error().Err(err).Msg("Failed to process feed")
			os.Exit(1)
		}
	default:
		log.Fatal().Str("command", ctx.Command()).Msg("Unknown command")
	}
}

func run(cmd config.RunCommand) error {
	provider := tracing.InitTracing(tracing.TracingConfig{
		ServiceName:  "feedpipe",
		Debug:        cmd.TraceDebug,
		SamplingRate: cmd.TraceSamplingRate,
		Exporter:     tracing.ExporterConfigFromEnv(),
	})

	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to flush traces")
		}
	}()

	metrics.InitMetrics(cmd.MetricsAddress)

	reporter, err := report.GetReporterFromString(cmd.Report, os.Stdout)
	if err != nil {
		return err
	}

	var p *pipeline.Pipeline
	if cmd.Config != "" {
		p, err = config.LoadConfigFile(cmd.Config)
	} else {
		p, err = config.FromFlags(cmd)
	}

	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("output", p.OutputName).Msg("Processing...")

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	if err := reporter.Report(report.NewSummary(result)); err != nil {
		// The feed has been written by now, so a failed report doesn't fail the run
		log.Warn().Err(err).Str("reporter", cmd.Report).Msg("Failed to report summary")
	}

	return nil
}
