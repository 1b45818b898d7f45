package main

import (
	"flag"
	"fmt"
	mrand "math/rand"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mithrel/marpdeck/internal/catalog"
	"github.com/mithrel/marpdeck/internal/export"
	"github.com/mithrel/marpdeck/pkg/api"
)

// Writes a large Marp deck to stdout, for exercising import, the daemon and
// the studio with more than a handful of slides.
func main() {
	total := flag.Int("n", 60, "number of slides")
	flag.Parse()

	// Deterministic seed for reproducible output
	mr := mrand.New(mrand.NewSource(42))
	kinds := catalog.Kinds()

	slides := make([]api.Slide, 0, *total)
	for i := 0; i < *total; i++ {
		kind := kinds[mr.Intn(len(kinds))]
		if i == 0 {
			kind = "cover"
		}
		text, _ := catalog.DefaultText(kind)
		text = strings.Replace(text, "Slide Title", fmt.Sprintf("Sample Slide %03d", i+1), 1)
		if mr.Float64() < 0.3 {
			text += "\n\n" + bullets(mr, 1+mr.Intn(4))
		}
		slides = append(slides, api.Slide{
			ID:   uuid.NewString(),
			Kind: kind,
			Text: text,
		})
	}

	style := api.DefaultStyle()
	if mr.Float64() < 0.5 {
		style.SetAspectRatio("4:3")
	}
	if _, err := os.Stdout.WriteString(export.Document(slides, style)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bullets(r *mrand.Rand, k int) string {
	lines := make([]string, k)
	for i := range lines {
		lines[i] = fmt.Sprintf("- point %d (%d)", i+1, r.Intn(100))
	}
	return strings.Join(lines, "\n")
}
