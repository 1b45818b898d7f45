package ipc

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mithrel/marpdeck/internal/studio"
	"github.com/mithrel/marpdeck/pkg/api"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	in := Message{Name: CmdMove, Index: 0, From: 2, To: 0, Text: "# Hi\n\n- a", Width: 800.5}
	s, err := toStruct(in)
	require.NoError(t, err)
	// zero-valued positional fields still travel
	_, ok := s.Fields["index"]
	assert.True(t, ok)

	var out Message
	require.NoError(t, fromStruct(s, &out))
	assert.Equal(t, in, out)
}

func TestHandlerRejectsUndecodableEnvelope(t *testing.T) {
	called := false
	h := NewHandler(func(context.Context, Message) Response {
		called = true
		return Response{OK: true}
	})
	bad, err := structpb.NewStruct(map[string]any{"index": "not-a-number"})
	require.NoError(t, err)
	out, err := h.Handle(context.Background(), bad)
	require.NoError(t, err)
	var r Response
	require.NoError(t, fromStruct(out.(*structpb.Struct), &r))
	assert.False(t, called)
	assert.False(t, r.OK)
	assert.Equal(t, "bad request", r.Msg)
}

func TestRequestOverUnixSocket(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	sock, err := SocketPath()
	require.NoError(t, err)
	assert.Equal(t, "marpdeck.sock", filepath.Base(sock))

	st := studio.New(studio.Options{})
	t.Cleanup(st.Close)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = Serve(ctx, sock, func(_ context.Context, m Message) Response {
			switch m.Name {
			case CmdAdd:
				sl := st.AddSlide(m.Kind)
				v := st.Snapshot()
				return Response{OK: true, Slide: &sl, View: &v}
			case CmdLayout:
				d := st.Snapshot().Dims
				return Response{OK: true, Dims: &d}
			}
			return Response{OK: false, Msg: "unknown command"}
		}, nil)
	}()
	require.Eventually(t, func() bool {
		_, err := os.Stat(sock)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)

	add, err := Request(ctx, sock, Message{Name: CmdAdd, Kind: "twoColumns"})
	require.NoError(t, err)
	require.True(t, add.OK, add.Msg)
	require.NotNil(t, add.Slide)
	assert.Equal(t, "twoColumns", add.Slide.Kind)
	require.NotNil(t, add.View)
	assert.Len(t, add.View.Slides, 2)
	assert.Equal(t, 1, add.View.Selected)
	assert.Equal(t, api.DefaultStyle(), add.View.Style)
	assert.Contains(t, add.View.SelectedHTML, `<div class="columns">`)

	lay, err := Request(ctx, sock, Message{Name: CmdLayout})
	require.NoError(t, err)
	require.NotNil(t, lay.Dims)
	assert.Equal(t, 1024, lay.Dims.ContentWidthPx)

	unk, err := Request(ctx, sock, Message{Name: "nope"})
	require.NoError(t, err)
	assert.False(t, unk.OK)
	assert.Equal(t, "unknown command", unk.Msg)
}
