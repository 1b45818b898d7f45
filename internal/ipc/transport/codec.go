package transport

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/proto"
)

// MaxFrame bounds a single frame; a whole exported deck fits comfortably.
const MaxFrame = 16 << 20

// writeProto writes m as a uvarint length followed by the marshaled bytes.
func writeProto(w io.Writer, m proto.Message) error {
	b, err := proto.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	var lenbuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenbuf[:], uint64(len(b)))
	if _, err := w.Write(lenbuf[:n]); err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// readProto reads one length-prefixed frame into dst.
func readProto(r io.Reader, dst proto.Message) error {
	br, ok := r.(io.ByteReader)
	if !ok {
		b := bufio.NewReader(r)
		br, r = b, b
	}
	ln, err := binary.ReadUvarint(br)
	if err != nil {
		return err
	}
	if ln > MaxFrame {
		return fmt.Errorf("frame too large: %d", ln)
	}
	buf := make([]byte, ln)
	if _, err := io.ReadFull(r, buf); err != nil {
		return err
	}
	return proto.Unmarshal(buf, dst)
}
