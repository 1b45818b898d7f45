package ipc

import (
	"context"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mithrel/marpdeck/internal/ipc/transport"
)

// Request sends a Message to the daemon and waits for a Response.
func Request(ctx context.Context, path string, m Message) (Response, error) {
	var r Response
	req, err := toStruct(m)
	if err != nil {
		return r, fmt.Errorf("encode request: %w", err)
	}
	out := &structpb.Struct{}
	if err := transport.NewUnixClient(path).Do(ctx, req, out); err != nil {
		return r, err
	}
	if err := fromStruct(out, &r); err != nil {
		return r, fmt.Errorf("decode response: %w", err)
	}
	return r, nil
}
