package rootcmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"go.ntppool.org/common/logger"
	"go.ntppool.org/common/tracing"
)

// Run parses the command line into cmd and runs the selected command
// with a context that is cancelled on SIGINT or SIGTERM.
func Run(cmd any, name, description string) {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	ctx = logger.NewContext(ctx, logger.Setup())

	parser, err := kong.New(cmd,
		kong.Name(name),
		kong.Description(description),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.ConfigureHelp(kong.HelpOptions{
			Tree: true,
		}),
		kong.UsageOnError(),
	)
	if err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	shutdown := initTracing(ctx, name)
	err = kctx.Run()
	shutdown()

	parser.FatalIfErrorf(err)
}

// tracingEnabled reports whether an OTLP exporter has been configured
// in the environment
func tracingEnabled() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" ||
		os.Getenv("OTEL_TRACES_EXPORTER") != ""
}

// initTracing installs the trace provider when the environment asks for
// it and returns a func that flushes and stops it.
func initTracing(ctx context.Context, name string) func() {
	if !tracingEnabled() {
		return func() {}
	}

	log := logger.FromContext(ctx)

	tpShutdownFn, err := tracing.InitTracer(ctx, &tracing.TracerConfig{
		ServiceName: name,
	})
	if err != nil {
		log.WarnContext(ctx, "could not setup tracing", "err", err)
		return func() {}
	}

	return func() {
		log.Debug("shutting down trace provider")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tpShutdownFn(shutdownCtx); err != nil {
			log.Warn("trace provider shutdown", "err", err)
		}
	}
}
