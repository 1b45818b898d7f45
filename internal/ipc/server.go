package ipc

import (
	"context"

	"github.com/mithrel/marpdeck/internal/ipc/transport"
)

// Serve listens on the Unix socket at path and answers one Message per
// connection until ctx is done. onErr, when set, observes connection
// failures.
func Serve(ctx context.Context, path string, handle func(context.Context, Message) Response, onErr func(error)) error {
	srv := transport.NewUnixServer(transport.UnixListener{Path: path})
	srv.OnError = onErr
	return srv.Serve(ctx, NewHandler(handle))
}
