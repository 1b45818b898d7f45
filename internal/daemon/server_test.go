package daemon

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/mithrel/marpdeck/internal/config"
	"github.com/mithrel/marpdeck/internal/ipc"
	"github.com/mithrel/marpdeck/internal/wire"
)

// waitForFile polls until a file exists or timeout.
func waitForFile(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return os.ErrNotExist
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func newTestApp(t *testing.T) *wire.App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	v := viper.New()
	if err := config.Load(context.Background(), v); err != nil {
		t.Fatalf("config load: %v", err)
	}
	app, err := wire.BuildApp(context.Background(), v)
	if err != nil {
		t.Fatalf("build app: %v", err)
	}
	t.Cleanup(func() { app.Close(context.Background()) })
	return app
}

func TestDaemonDeckLifecycle(t *testing.T) {
	runtimeDir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	app := newTestApp(t)

	sock, err := ipc.SocketPath()
	if err != nil {
		t.Fatalf("socket path: %v", err)
	}
	if filepath.Dir(sock) != runtimeDir {
		t.Fatalf("socket %s not under runtime dir", sock)
	}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, app, sock, l) }()
	if err := waitForFile(sock, 2*time.Second); err != nil {
		t.Fatalf("socket not ready: %v", err)
	}

	req := func(m ipc.Message) ipc.Response {
		t.Helper()
		r, err := ipc.Request(ctx, sock, m)
		if err != nil {
			t.Fatalf("%s request: %v", m.Name, err)
		}
		return r
	}

	if r := req(ipc.Message{Name: ipc.CmdPing}); !r.OK || r.Msg != "pong" {
		t.Fatalf("ping: %+v", r)
	}

	add := req(ipc.Message{Name: ipc.CmdAdd, Kind: "three"})
	if !add.OK || add.Slide == nil || add.Slide.Kind != "threeColumns" {
		t.Fatalf("add failed: %+v", add)
	}
	if add.View.Selected != 1 || len(add.View.Slides) != 2 {
		t.Fatalf("add view: %+v", add.View)
	}

	if r := req(ipc.Message{Name: ipc.CmdAdd, Kind: "zzzz"}); r.OK {
		t.Fatalf("expected unknown template to fail: %+v", r)
	}

	upd := req(ipc.Message{Name: ipc.CmdUpdate, Index: 1, Text: "# Updated"})
	if !upd.OK || upd.View.Slides[1].Text != "# Updated" || upd.View.SelectedHTML != "<h1>Updated</h1>" {
		t.Fatalf("update failed: %+v", upd)
	}
	if r := req(ipc.Message{Name: ipc.CmdUpdate, Index: 7, Text: "x"}); r.OK {
		t.Fatalf("expected out of range update to fail: %+v", r)
	}

	mv := req(ipc.Message{Name: ipc.CmdMove, From: 1, To: 0})
	if !mv.OK || mv.View.Slides[0].Text != "# Updated" || mv.View.Selected != 0 {
		t.Fatalf("move failed: %+v", mv)
	}

	st := req(ipc.Message{Name: ipc.CmdStyle, Key: "aspect_ratio", Value: "16:10"})
	if !st.OK || st.View.Dims.SlideHeightPx != 800 {
		t.Fatalf("style failed: %+v", st)
	}
	if r := req(ipc.Message{Name: ipc.CmdStyle, Key: "aspect_ratio", Value: "1:1"}); r.OK {
		t.Fatalf("expected unknown ratio to fail: %+v", r)
	}

	rs := req(ipc.Message{Name: ipc.CmdResize, Width: 656, Height: 2000})
	if !rs.OK || rs.View.Scale.ZoomLabel != "Fit" || rs.View.Scale.Effective != 0.5 {
		t.Fatalf("resize failed: %+v", rs.View.Scale)
	}
	zm := req(ipc.Message{Name: ipc.CmdZoom, Value: "in"})
	if !zm.OK || zm.Msg != "60%" {
		t.Fatalf("zoom failed: %+v", zm)
	}

	html := req(ipc.Message{Name: ipc.CmdSlide, Index: 0})
	if !html.OK || html.HTML != "<h1>Updated</h1>" {
		t.Fatalf("render failed: %+v", html)
	}

	exp := req(ipc.Message{Name: ipc.CmdExport})
	if !exp.OK || len(exp.Document) == 0 {
		t.Fatalf("export failed: %+v", exp)
	}

	del := req(ipc.Message{Name: ipc.CmdDelete, Index: 0})
	if !del.OK || len(del.View.Slides) != 1 {
		t.Fatalf("delete failed: %+v", del)
	}
	last := req(ipc.Message{Name: ipc.CmdDelete, Index: 0})
	if !last.OK || last.Msg != "no change" || len(last.View.Slides) != 1 {
		t.Fatalf("deleting the last slide must be a no-op: %+v", last)
	}

	imp := req(ipc.Message{Name: ipc.CmdImport, Text: exp.Document})
	if !imp.OK || len(imp.View.Slides) != 2 || imp.View.Slides[0].Text != "# Updated" {
		t.Fatalf("import failed: %+v", imp)
	}

	// HTTP shares the same studio.
	resp, err := http.Get("http://" + l.Addr().String() + "/v1/slides/0/html")
	if err != nil {
		t.Fatalf("http: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "<h1>Updated</h1>" {
		t.Fatalf("http slide html: %q", body)
	}

	if r := req(ipc.Message{Name: "note.add"}); r.OK || r.Msg != "unknown command" {
		t.Fatalf("unknown command: %+v", r)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("daemon did not stop")
	}
}
