// Package cipher implements the Graal Reborn ENCRYPT_GEN_5 partial XOR
// stream cipher: a keystream derived from a linear congruential generator,
// applied for a limited number of 32-bit words and then held steady for the
// remainder of the frame.
package cipher

import "encoding/binary"

const (
	// Seed is the initial iterator value every Cipher is seeded with.
	Seed = 0x4A80B38
	// Multiplier is the LCG multiplier: iterator = iterator*Multiplier + key.
	Multiplier = 0x8088405
)

// Cipher holds one direction's rolling keystream state. Send and receive
// directions each keep an independent instance; both start from the same
// Seed and key, and diverge as each advances through its own sequence of
// frames (the keystream depends on frame lengths and limits, never on
// payload content).
type Cipher struct {
	key      byte
	iterator uint32
	limit    int // remaining 32-bit words to mix this frame
}

// New creates a cipher keyed with key, with the iterator seeded to Seed.
func New(key byte) *Cipher {
	return &Cipher{key: key, iterator: Seed}
}

// Reset sets the per-frame word limit. Call once before XOR for each frame;
// limit is 12 for uncompressed frames, 4 for zlib/bzip2 frames (spec §4.1/§6).
func (c *Cipher) Reset(limit int) {
	c.limit = limit
}

// XOR encrypts or decrypts payload in place (the cipher is its own inverse).
// Every 4th byte boundary, while limit > 0, the iterator is advanced and
// limit decremented; once limit reaches zero the iterator stops advancing
// but XOR continues against its last value for the rest of the payload —
// this continuation is required behavior, not a bug (spec §4.1).
func (c *Cipher) XOR(payload []byte) {
	var itBytes [4]byte
	binary.LittleEndian.PutUint32(itBytes[:], c.iterator)

	for i := range payload {
		if i%4 == 0 {
			if c.limit > 0 {
				c.iterator = c.iterator*Multiplier + uint32(c.key)
				binary.LittleEndian.PutUint32(itBytes[:], c.iterator)
				c.limit--
			}
		}
		payload[i] ^= itBytes[i%4]
	}
}
