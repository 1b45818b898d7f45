package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"google.golang.org/protobuf/proto"
)

// DefaultTimeout caps a client round trip when ctx has no deadline.
const DefaultTimeout = 30 * time.Second

// UnixListener listens on a Unix domain socket path, replacing a stale
// socket file and restricting it to the owner.
type UnixListener struct{ Path string }

func (u UnixListener) Listen(ctx context.Context) (net.Listener, error) {
	_ = os.Remove(u.Path)
	var lc net.ListenConfig
	l, err := lc.Listen(ctx, "unix", u.Path)
	if err != nil {
		return nil, err
	}
	_ = os.Chmod(u.Path, 0o600)
	return l, nil
}

// UnixServer serves a Handler over a Listener.
type UnixServer struct {
	L Listener
	// OnError observes per-connection failures; nil discards them.
	OnError func(error)
}

func NewUnixServer(l Listener) *UnixServer { return &UnixServer{L: l} }

func (s *UnixServer) Serve(ctx context.Context, h Handler) error {
	l, err := s.L.Listen(ctx)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()
	defer l.Close()
	for {
		c, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		go func(conn net.Conn) {
			defer conn.Close()
			if err := serveConn(ctx, conn, h); err != nil && s.OnError != nil {
				s.OnError(err)
			}
		}(c)
	}
}

func serveConn(ctx context.Context, conn net.Conn, h Handler) error {
	_ = conn.SetDeadline(time.Now().Add(DefaultTimeout))
	req := h.NewRequest()
	if err := readProto(conn, req); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	resp, err := h.Handle(ctx, req)
	if err != nil {
		return fmt.Errorf("handle: %w", err)
	}
	if resp == nil {
		return nil
	}
	return writeProto(conn, resp)
}

// UnixClient dials a fresh connection per call.
type UnixClient struct{ Path string }

func NewUnixClient(path string) *UnixClient { return &UnixClient{Path: path} }

func (c *UnixClient) Do(ctx context.Context, req, resp proto.Message) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.Path)
	if err != nil {
		return err
	}
	defer conn.Close()
	dl, ok := ctx.Deadline()
	if !ok {
		dl = time.Now().Add(DefaultTimeout)
	}
	_ = conn.SetDeadline(dl)
	if err := writeProto(conn, req); err != nil {
		return fmt.Errorf("write request: %w", err)
	}
	if err := readProto(conn, resp); err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	return nil
}
