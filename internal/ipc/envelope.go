package ipc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mithrel/marpdeck/internal/ipc/transport"
)

// toStruct converts a JSON-tagged value into a protobuf Struct envelope.
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return structpb.NewStruct(m)
}

// fromStruct decodes an envelope back into dst via its JSON form.
func fromStruct(s *structpb.Struct, dst any) error {
	b, err := protojson.Marshal(s)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// NewHandler adapts a Message handler to the protobuf transport. An
// envelope that does not decode into a Message is answered with
// "bad request" without reaching fn.
func NewHandler(fn func(context.Context, Message) Response) transport.Handler {
	return transport.HandlerFunc[*structpb.Struct]{
		New: func() *structpb.Struct { return &structpb.Struct{} },
		Fn: func(ctx context.Context, req *structpb.Struct) (proto.Message, error) {
			var m Message
			resp := Response{OK: false, Msg: "bad request"}
			if err := fromStruct(req, &m); err == nil {
				resp = fn(ctx, m)
			}
			out, err := toStruct(resp)
			if err != nil {
				return nil, fmt.Errorf("encode response: %w", err)
			}
			return out, nil
		},
	}
}
