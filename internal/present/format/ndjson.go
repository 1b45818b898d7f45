package format

import (
	"encoding/json"
	"io"

	"github.com/mithrel/marpdeck/pkg/api"
)

// WriteNDJSONSlides writes one slide object per line.
func WriteNDJSONSlides(w io.Writer, slides []api.Slide) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, s := range slides {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}
