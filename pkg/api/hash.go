package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// ContentHash returns the hex BLAKE3 digest of slide text. Renderers key
// their memo on it.
func ContentHash(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Hash hashes the slide's text together with its kind.
func (s Slide) Hash() string {
	h := blake3.New()
	_, _ = h.Write([]byte(s.Kind))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(s.Text))
	return hex.EncodeToString(h.Sum(nil))
}
