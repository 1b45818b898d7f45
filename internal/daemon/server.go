package daemon

import (
	"context"
	"fmt"
	"net"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mithrel/marpdeck/internal/ipc"
	"github.com/mithrel/marpdeck/internal/server"
	"github.com/mithrel/marpdeck/internal/wire"
)

// DefaultHTTPAddr is used when http_addr is blank.
const DefaultHTTPAddr = "127.0.0.1:7466"

// Run starts the daemon using the provided, already-wired App. It serves
// IPC on the default socket and HTTP on http_addr until ctx is done.
func Run(ctx context.Context, app *wire.App) error {
	sock, err := ipc.SocketPath()
	if err != nil {
		return err
	}
	addr := strings.TrimSpace(app.Cfg.GetString("http_addr"))
	if addr == "" {
		addr = DefaultHTTPAddr
	}
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("http listen %s: %w", addr, err)
	}
	return Serve(ctx, app, sock, l)
}

// Serve runs the IPC server on sock and the HTTP server on l. Either
// failing stops both.
func Serve(ctx context.Context, app *wire.App, sock string, l net.Listener) error {
	h := NewHandler(app.Studio, app.Feed, app.Log)
	srv := server.New(server.Config{
		Studio:         app.Studio,
		Feed:           app.Feed,
		Log:            app.Log,
		Tracer:         app.Tracing.Provider,
		ExportFilename: app.Cfg.GetString("export.filename"),
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Log.Info("ipc listening", "socket", sock)
		return ipc.Serve(ctx, sock, h.Handle, func(err error) {
			app.Log.Warn("ipc connection failed", "error", err)
		})
	})
	g.Go(func() error {
		return srv.Serve(ctx, l)
	})
	err := g.Wait()
	app.Log.Info("daemon stopped")
	return err
}
