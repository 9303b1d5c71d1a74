// Package correlated is a minimal HTTP/1.1 file server, which redirects clients to its
// peers when a requested file isn't available locally.
package correlated

import (
	"net"

	"github.com/LightFelicis/CorrelatedTCPServers/config"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/correlation"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/dispatcher"
	"github.com/LightFelicis/CorrelatedTCPServers/internal/protocol/http1"
	"github.com/LightFelicis/CorrelatedTCPServers/router"
	"github.com/LightFelicis/CorrelatedTCPServers/transport"
	"github.com/rs/zerolog"
)

type App struct {
	cfg    *config.Config
	root   string
	table  *correlation.Table
	logger zerolog.Logger
	hooks  hooks
	tcp    *transport.TCP
	sup    transport.Supervisor
}

// New returns an application serving files from root. Files missing there are looked up
// in the table of correlated servers. Nil config means defaults.
func New(cfg *config.Config, root string, table *correlation.Table) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	if table == nil {
		table = correlation.New()
	}

	return &App{
		cfg:    cfg,
		root:   root,
		table:  table,
		logger: zerolog.Nop(),
		sup:    transport.NewSupervisor(),
	}
}

// Logger sets the logger. By default, nothing is logged.
func (a *App) Logger(logger zerolog.Logger) *App {
	a.logger = logger
	return a
}

// NotifyOnStart calls the callback at the moment, when the listener is bound and the server
// is about to start accepting connections.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed,
// that at the moment as the callback is called, all the clients are already disconnected.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the address the server listens on. Valid only after the start hook is called.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Serve binds the address and serves connections until Stop is called or accepting fails.
func (a *App) Serve(addr string) error {
	r := dispatcher.New(a.cfg, a.root, a.table, dispatcher.OS{})
	a.tcp = transport.NewTCP(a.cfg.NET)

	if err := a.sup.Add(addr, a.tcp, a.newTCPCallback(r)); err != nil {
		return err
	}

	a.logger.Info().
		Str("addr", a.tcp.Addr().String()).
		Str("root", a.root).
		Int("peers", a.table.Len()).
		Msg("listening")

	callIfNotNil(a.hooks.OnStart)
	err := a.sup.Run()
	callIfNotNil(a.hooks.OnStop)

	if err != nil {
		a.logger.Error().Err(err).Msg("stopped accepting connections")
	}

	return err
}

// Stop closes the listener along with all the connections and waits until Serve returns.
// Must not be called before the start hook.
func (a *App) Stop() {
	a.sup.Stop()
}

func (a *App) newTCPCallback(r router.Router) func(net.Conn) {
	return func(conn net.Conn) {
		client := transport.NewClient(conn, a.cfg.NET, make([]byte, a.cfg.NET.ReadBufferSize))
		logger := a.logger.With().Str("remote", client.Remote().String()).Logger()
		logger.Info().Msg("client connected")

		http1.New(a.cfg, r, client, logger).Serve()

		logger.Info().Msg("client disconnected")
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
