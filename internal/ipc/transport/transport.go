// Package transport carries one length-prefixed protobuf request and one
// response per connection.
package transport

import (
	"context"
	"net"

	"google.golang.org/protobuf/proto"
)

// Handler answers one request frame. NewRequest returns the empty message
// the incoming frame is decoded into.
type Handler interface {
	NewRequest() proto.Message
	Handle(ctx context.Context, req proto.Message) (proto.Message, error)
}

// HandlerFunc adapts a function over a fixed request type to Handler.
type HandlerFunc[Req proto.Message] struct {
	New func() Req
	Fn  func(ctx context.Context, req Req) (proto.Message, error)
}

func (h HandlerFunc[Req]) NewRequest() proto.Message { return h.New() }

func (h HandlerFunc[Req]) Handle(ctx context.Context, req proto.Message) (proto.Message, error) {
	return h.Fn(ctx, req.(Req))
}

// Server accepts connections until ctx is done.
type Server interface {
	Serve(ctx context.Context, h Handler) error
}

// Client performs a single round trip, decoding the reply into resp.
type Client interface {
	Do(ctx context.Context, req, resp proto.Message) error
}

// Listener abstracts how a server obtains a net.Listener.
type Listener interface {
	Listen(ctx context.Context) (net.Listener, error)
}
