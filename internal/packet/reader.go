// Package packet implements the Graal Reborn logical-packet layer: the
// universal +32 integer encoding, field readers/writers, and the static
// id registry (spec §4.4).
package packet

import "golang.org/x/text/encoding/charmap"

// Reader decodes fields from one logical packet body (the bytes after the
// id byte has already been stripped and converted to a logical id).
type Reader struct {
	data []byte
	off  int
}

// NewReader wraps body, the packet bytes with the id byte already removed.
func NewReader(body []byte) *Reader {
	return &Reader{data: body}
}

// ReadByte reads one +32-encoded byte, range 0..223.
func (r *Reader) ReadByte() byte {
	if r.off >= len(r.data) {
		return 0
	}
	v := r.data[r.off] - 32
	r.off++
	return v
}

// ReadRawByte reads one byte with no +32 decoding (used by binary bodies).
func (r *Reader) ReadRawByte() byte {
	if r.off >= len(r.data) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// ReadInt reads an n-byte little-endian +32-encoded integer: each byte
// contributes 7 useful bits, value = sum((byte_i - 32) << (7*i)).
func (r *Reader) ReadInt(n int) int64 {
	var v int64
	for i := 0; i < n; i++ {
		if r.off >= len(r.data) {
			break
		}
		b := int64(r.data[r.off] - 32)
		v |= b << uint(7*i)
		r.off++
	}
	return v
}

// ReadString reads a one-byte-length-prefixed (+32 encoded) ASCII/Latin-1
// string and returns it decoded to UTF-8.
func (r *Reader) ReadString() string {
	n := int(r.ReadByte())
	return r.ReadFixedString(n)
}

// ReadHeadgifString reads HEADGIF's nonstandard length encoding: len+100
// instead of len+32 (spec §4.5, property id 11).
func (r *Reader) ReadHeadgifString() string {
	if r.off >= len(r.data) {
		return ""
	}
	n := int(r.data[r.off]) - 100
	r.off++
	if n < 0 {
		n = 0
	}
	return r.ReadFixedString(n)
}

// ReadFixedString reads exactly n raw bytes and decodes them from Latin-1.
func (r *Reader) ReadFixedString(n int) string {
	if n < 0 {
		n = 0
	}
	end := r.off + n
	if end > len(r.data) {
		end = len(r.data)
	}
	raw := r.data[r.off:end]
	r.off = end
	return latin1ToUTF8(raw)
}

// ReadBytes reads n raw, undecoded bytes.
func (r *Reader) ReadBytes(n int) []byte {
	end := r.off + n
	if end > len(r.data) {
		end = len(r.data)
	}
	out := make([]byte, end-r.off)
	copy(out, r.data[r.off:end])
	r.off = end
	return out
}

// ReadRest returns every remaining unread byte.
func (r *Reader) ReadRest() []byte {
	out := r.data[r.off:]
	r.off = len(r.data)
	return out
}

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) {
	r.off += n
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
}

// latin1ToUTF8 decodes raw protocol bytes into a UTF-8 Go string. Graal
// clients are historically Latin-1; the fast path below mirrors the
// teacher's ms950ToUTF8 shape (ASCII bytes pass through unchanged, only the
// high half needs the codec) but targets charmap.ISO8859_1 instead of Big5.
func latin1ToUTF8(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	allASCII := true
	for _, b := range raw {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return string(raw)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
