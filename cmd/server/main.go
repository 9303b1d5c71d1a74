package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	correlated "github.com/LightFelicis/CorrelatedTCPServers"
	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/correlation"
	"github.com/rs/zerolog"
)

const defaultPort = "8080"

var (
	errArgsNumber = errors.New("expected 2 or 3 positional arguments")
	errNotDir     = errors.New("is not a directory")
	errNotRegular = errors.New("is not a regular file")
	errBadPort    = errors.New("port must be a number in range 0-65535")
)

type options struct {
	root      string
	peersFile string
	port      string
	cfg       *config.Config
	level     zerolog.Level
}

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(fs.Output(), "usage: server [flags] <files_dir> <correlated_servers_file> [port]")
		fs.PrintDefaults()
	}

	return fs
}

func parseOptions(fs *flag.FlagSet, args []string) (options, error) {
	configPath := fs.String("config", "", "JSON file overriding the default settings")
	maxConns := fs.Int("max-conns", -1, "number of clients served simultaneously, 0 means unlimited")
	logLevel := fs.String("log-level", "info", "one of trace, debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{cfg: config.Default(), port: defaultPort}

	var err error
	if *configPath != "" {
		if opts.cfg, err = config.Load(*configPath); err != nil {
			return options{}, err
		}
	}

	if *maxConns >= 0 {
		opts.cfg.NET.MaxConnections = *maxConns
	}

	if opts.level, err = zerolog.ParseLevel(*logLevel); err != nil {
		return options{}, err
	}

	switch positional := fs.Args(); len(positional) {
	case 3:
		opts.port = positional[2]
		fallthrough
	case 2:
		opts.root, opts.peersFile = positional[0], positional[1]
	default:
		return options{}, errArgsNumber
	}

	return opts, opts.validate()
}

func (o options) validate() error {
	info, err := os.Stat(o.root)
	switch {
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s: %w", o.root, errNotDir)
	}

	info, err = os.Stat(o.peersFile)
	switch {
	case err != nil:
		return err
	case !info.Mode().IsRegular():
		return fmt.Errorf("%s: %w", o.peersFile, errNotRegular)
	}

	if _, err = strconv.ParseUint(o.port, 10, 16); err != nil {
		return errBadPort
	}

	return nil
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	fs := newFlagSet()
	opts, err := parseOptions(fs, os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logger.Error().Err(err).Msg("bad arguments")
		}

		if errors.Is(err, errArgsNumber) {
			fs.Usage()
		}

		os.Exit(1)
	}

	logger = logger.Level(opts.level)

	table, err := correlation.Load(opts.peersFile)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load correlated servers")
		os.Exit(1)
	}

	started := make(chan struct{})
	app := correlated.New(opts.cfg, opts.root, table).
		Logger(logger).
		NotifyOnStart(func() {
			close(started)
		})

	go stopOnSignal(app, started, logger)

	if err = app.Serve(net.JoinHostPort("", opts.port)); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}

func stopOnSignal(app *correlated.App, started <-chan struct{}, logger zerolog.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	sig := <-signals
	logger.Info().Stringer("signal", sig).Msg("shutting down")
	<-started
	app.Stop()
}
