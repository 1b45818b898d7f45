package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestComposeAndParseRoundTrip(t *testing.T) {
	text := "# Title\n\n%% not a header\n- a"
	content := ComposeSlide(2, "Cover Slide", text)
	if !strings.HasPrefix(content, "%% marpdeck slide 2 (Cover Slide)\n") {
		t.Fatalf("unexpected header: %q", content)
	}
	if got := ParseEditedSlide(content); got != text {
		t.Fatalf("ParseEditedSlide=%q want %q", got, text)
	}
}

func TestParseEditedSlide(t *testing.T) {
	cases := map[string]string{
		"%% header\r\n# A\r\n\r\n":  "# A\n",
		"# no header\n":             "# no header",
		"%% only header":            "",
		"%% h\n%% h2\n\nbody\nmore": "\nbody\nmore",
	}
	for in, want := range cases {
		if got := ParseEditedSlide(in); got != want {
			t.Fatalf("ParseEditedSlide(%q)=%q want %q", in, got, want)
		}
	}
}

func TestPathForSlide(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	path, err := PathForSlide("ab/../c d")
	if err != nil {
		t.Fatalf("PathForSlide error: %v", err)
	}
	if want := filepath.Join(dir, "marpdeck", "ab_.._c_d.marpdeck.md"); path != want {
		t.Fatalf("PathForSlide=%q want %q", path, want)
	}
}

func TestOpenAtRunsEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "sed -i s/Old/New/")
	path := filepath.Join(t.TempDir(), "s.md")
	out, changed, err := OpenAt(path, []byte("# Old\n"))
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	if !changed || string(out) != "# New\n" {
		t.Fatalf("OpenAt=%q changed=%v", out, changed)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("perm=%v", info.Mode().Perm())
	}
}
