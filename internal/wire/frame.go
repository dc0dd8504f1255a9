// Package wire implements the TCP frame codec and compression selection
// that sit directly on top of the socket (spec §4.2/§4.3): on-wire shape
// [length u16 BE][compression u8][encrypted payload], batched logical
// packets joined by '\n' inside the decrypted, decompressed payload.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hosler/pyreborn-go/internal/cipher"
	"github.com/hosler/pyreborn-go/internal/perr"
)

// maxFrameLen bounds the 2-byte big-endian length field.
const maxFrameLen = 0xFFFF

// ReadFrame reads one frame from r, decrypts it with c, decompresses it,
// and returns the inner batch payload (still '\n'-joined logical packets).
func ReadFrame(r io.Reader, c *cipher.Cipher) ([]byte, error) {
	var header [3]byte
	if _, err := io.ReadFull(r, header[:2]); err != nil {
		return nil, perr.Wrap(perr.BadFrame, "read frame length", err)
	}
	length := int(binary.BigEndian.Uint16(header[:2]))
	if length == 0 {
		return nil, perr.New(perr.BadFrame, "frame length is zero")
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, perr.Wrap(perr.BadFrame, "read frame body", err)
	}

	compType := CompressionType(body[0])
	encrypted := body[1:]

	c.Reset(compType.CipherLimit())
	c.XOR(encrypted)

	payload, err := Decompress(compType, encrypted)
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// WriteFrame compresses payload, encrypts it with c, and writes the framed
// bytes to w.
func WriteFrame(w io.Writer, c *cipher.Cipher, payload []byte) error {
	compType, compressed := Compress(payload)
	if compType == Uncompressed {
		// Compress hands back payload itself here; encrypt a copy so the
		// caller's slice is left unchanged.
		compressed = append([]byte(nil), compressed...)
	}

	c.Reset(compType.CipherLimit())
	c.XOR(compressed)

	length := len(compressed) + 1
	if length > maxFrameLen {
		return perr.New(perr.BadFrame, fmt.Sprintf("frame too large: %d bytes", length))
	}

	var header [3]byte
	binary.BigEndian.PutUint16(header[:2], uint16(length))
	header[2] = byte(compType)

	if _, err := w.Write(header[:]); err != nil {
		return perr.Wrap(perr.Transport, "write frame header", err)
	}
	if _, err := w.Write(compressed); err != nil {
		return perr.Wrap(perr.Transport, "write frame body", err)
	}
	return nil
}

// SplitBatch splits a decoded frame payload into its logical packets. Most
// packets are '\n'-delimited; a caller that has just consumed a rawdata
// preamble (packet id 100, spec §4.4) should instead treat the next frame's
// whole payload as one positional body, not pass it through this splitter.
func SplitBatch(payload []byte) [][]byte {
	if len(payload) == 0 {
		return nil
	}
	var out [][]byte
	start := 0
	for i, b := range payload {
		if b == '\n' {
			out = append(out, payload[start:i])
			start = i + 1
		}
	}
	if start < len(payload) {
		out = append(out, payload[start:])
	}
	return out
}
