package packet

import "golang.org/x/text/encoding/charmap"

// Writer builds one logical outbound packet body. Bytes() prepends the
// +32-encoded id byte to produce the final bytes placed in a frame batch.
type Writer struct {
	id  byte
	buf []byte
}

// NewWriter starts a packet for the given logical id (0..255, before +32).
func NewWriter(id byte) *Writer {
	return &Writer{id: id, buf: make([]byte, 0, 32)}
}

// WriteByte writes one +32-encoded byte, v must be in 0..223.
func (w *Writer) WriteByte(v byte) {
	w.buf = append(w.buf, v+32)
}

// WriteRawByte writes one byte with no +32 encoding.
func (w *Writer) WriteRawByte(v byte) {
	w.buf = append(w.buf, v)
}

// WriteInt writes v as an n-byte little-endian +32-encoded integer, 7 bits
// per byte.
func (w *Writer) WriteInt(v int64, n int) {
	for i := 0; i < n; i++ {
		b := byte((v >> uint(7*i)) & 0x7F)
		w.buf = append(w.buf, b+32)
	}
}

// WriteString writes a one-byte +32-encoded length prefix followed by s
// encoded as Latin-1.
func (w *Writer) WriteString(s string) {
	enc := utf8ToLatin1(s)
	w.WriteByte(byte(len(enc)))
	w.buf = append(w.buf, enc...)
}

// WriteHeadgifString writes HEADGIF's len+100 length prefix (spec §4.5).
func (w *Writer) WriteHeadgifString(s string) {
	enc := utf8ToLatin1(s)
	w.buf = append(w.buf, byte(len(enc)+100))
	w.buf = append(w.buf, enc...)
}

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// Bytes returns the full packet: the +32-encoded id byte followed by the
// body built so far.
func (w *Writer) Bytes() []byte {
	out := make([]byte, 0, len(w.buf)+1)
	out = append(out, w.id+32)
	out = append(out, w.buf...)
	return out
}

func utf8ToLatin1(s string) []byte {
	allASCII := true
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return []byte(s)
	}
	enc, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return enc
}
