package bootstrap

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/DODOEX/b64huff/internal/common"
	"github.com/DODOEX/b64huff/internal/module/codec"
	"github.com/DODOEX/b64huff/internal/module/codec/service"
	"github.com/DODOEX/b64huff/internal/module/shared"
	"github.com/DODOEX/b64huff/utils"
	"github.com/DODOEX/b64huff/utils/config"
	fxzerolog "github.com/efectn/fx-zerolog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 64
)

const usage = `Usage:
  b64huff [flags] <path>         encode <path> into <path>.hfm
  b64huff [flags] encode <path>
  b64huff [flags] decode <path>  restore the file <path> was encoded from
  b64huff [flags] serve          run the HTTP codec service

Flags:
`

// Run executes one command line and returns the process exit code.
func Run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("b64huff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("config", "", "extra YAML config file")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return ExitSuccess
		}
		return ExitUsage
	}

	direction, path, ok := parseCommand(fs.Args())
	if !ok {
		fs.Usage()
		return ExitUsage
	}

	if direction == "" {
		StartCluster(shared.ConfigFile(*file))
		return ExitSuccess
	}

	return RunJob(shared.ConfigFile(*file), direction, path)
}

// parseCommand returns an empty direction for serve.
func parseCommand(args []string) (direction common.Direction, path string, ok bool) {
	switch {
	case len(args) == 1 && args[0] == "serve":
		return "", "", true
	case len(args) == 2 && args[0] == string(common.Encode):
		return common.Encode, args[1], true
	case len(args) == 2 && args[0] == string(common.Decode):
		return common.Decode, args[1], true
	case len(args) == 1 && args[0] != "":
		return common.Encode, args[0], true
	}
	return "", "", false
}

// RunJob encodes or decodes one stored object and exits.
func RunJob(file shared.ConfigFile, direction common.Direction, path string) int {
	utils.RegisterMetrics(prometheus.DefaultRegisterer)

	var (
		conf   *config.Conf
		logger zerolog.Logger
		svc    service.CodecService
	)

	app := fx.New(
		fx.Supply(file),

		shared.NewSharedModule,
		codec.NewCodecModule,

		fx.WithLogger(fxzerolog.Init()),
		fx.StartTimeout(time.Minute),
		fx.StopTimeout(time.Minute),

		fx.Invoke(InitBackends),
		fx.Populate(&conf, &logger, &svc),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitFailure
	}

	ctx := context.Background()
	startCtx, cancel := context.WithTimeout(ctx, app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		logger.Error().Err(err).Msg("Failed to start")
		return ExitFailure
	}

	var err error
	if direction == common.Decode {
		_, err = svc.DecodeFile(ctx, path)
	} else {
		_, err = svc.EncodeFile(ctx, path)
	}

	stopCtx, cancelStop := context.WithTimeout(ctx, app.StopTimeout())
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to stop cleanly")
	}

	if textfile := conf.String("metrics.textfile", ""); textfile != "" {
		if err := prometheus.WriteToTextfile(textfile, prometheus.DefaultGatherer); err != nil {
			logger.Warn().Err(err).Msgf("Failed to write metrics to %s", textfile)
		}
	}

	return ExitCode(err)
}

// ExitCode maps an error to the process exit code of its kind.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := common.AsCodecErrors(err); ok {
		return e.ExitCode()
	}
	return ExitFailure
}
