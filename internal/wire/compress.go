package wire

import (
	"bytes"
	"compress/bzip2"
	"compress/zlib"
	"io"

	"github.com/hosler/pyreborn-go/internal/perr"
)

// CompressionType is the single byte that precedes every frame's encrypted
// payload, announcing both how it was compressed and how many cipher words
// the receiver must mix for this frame (spec §4.1/§4.2).
type CompressionType byte

const (
	Uncompressed CompressionType = 0x02
	Zlib         CompressionType = 0x04
	Bzip2        CompressionType = 0x06
)

// CipherLimit returns the number of 32-bit iterator words this compression
// type consumes per frame.
func (t CompressionType) CipherLimit() int {
	if t == Uncompressed {
		return 12
	}
	return 4
}

// uncompressedThreshold is the largest raw payload size sent without
// compression; anything larger is deflated (spec §4.2).
const uncompressedThreshold = 55

// Compress picks a compression type for payload and returns the encoded
// bytes for that type. Bzip2 is never produced, only accepted on decode.
func Compress(payload []byte) (CompressionType, []byte) {
	if len(payload) <= uncompressedThreshold {
		return Uncompressed, payload
	}

	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(payload)
	w.Close()
	return Zlib, buf.Bytes()
}

// Decompress reverses Compress for any of the three accepted types.
func Decompress(t CompressionType, payload []byte) ([]byte, error) {
	switch t {
	case Uncompressed:
		return payload, nil
	case Zlib:
		r, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return nil, perr.Wrap(perr.BadFrame, "decompress(zlib)", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, perr.Wrap(perr.BadFrame, "decompress(zlib)", err)
		}
		return out, nil
	case Bzip2:
		out, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(payload)))
		if err != nil {
			return nil, perr.Wrap(perr.BadFrame, "decompress(bzip2)", err)
		}
		return out, nil
	default:
		return nil, perr.New(perr.BadFrame, "decompress: unknown compression type")
	}
}
