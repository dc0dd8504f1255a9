// Package board implements the level/board codecs: the 8192-byte wire tile
// array, the GLEVNW01 text level format, and the .gmap manifest format
// (spec §4.6).
package board

import (
	"encoding/binary"

	"github.com/hosler/pyreborn-go/internal/perr"
)

// TileCount is the number of cells in a level's board (64x64).
const TileCount = 64 * 64

// WireBoardBytes is the exact size of a boardpacket frame body: 4096 tiles
// at 2 bytes each.
const WireBoardBytes = TileCount * 2

// DecodeBoard decodes a boardpacket's 8192-byte payload into 4096
// normalized tile ids (spec §4.6, §3: ids are taken modulo 1024).
func DecodeBoard(data []byte) ([TileCount]uint16, error) {
	var tiles [TileCount]uint16
	if len(data) != WireBoardBytes {
		return tiles, perr.New(perr.BadPacket, "board payload is not 8192 bytes")
	}
	for i := 0; i < TileCount; i++ {
		v := binary.LittleEndian.Uint16(data[i*2 : i*2+2])
		tiles[i] = v % 1024
	}
	return tiles, nil
}

// EncodeBoard is the inverse of DecodeBoard, for tests and for any caller
// building a synthetic board frame.
func EncodeBoard(tiles [TileCount]uint16) []byte {
	out := make([]byte, WireBoardBytes)
	for i, v := range tiles {
		binary.LittleEndian.PutUint16(out[i*2:i*2+2], v%1024)
	}
	return out
}

// base64Alphabet is the GLEVNW01 two-character tile encoding alphabet
// (spec §4.6): standard base64 charset, used as a plain lookup table rather
// than through encoding/base64 since tiles are decoded pairwise into a
// single 0..1023 id, not as a byte stream.
const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Index [256]int8

func init() {
	for i := range base64Index {
		base64Index[i] = -1
	}
	for i := 0; i < len(base64Alphabet); i++ {
		base64Index[base64Alphabet[i]] = int8(i)
	}
}

// DecodeTilePair decodes one two-character GLEVNW01 tile encoding into a
// normalized tile id: (idx(c1)*64 + idx(c2)) mod 1024.
func DecodeTilePair(c1, c2 byte) (uint16, error) {
	i1, i2 := base64Index[c1], base64Index[c2]
	if i1 < 0 || i2 < 0 {
		return 0, perr.New(perr.BadPacket, "invalid GLEVNW01 tile character")
	}
	return uint16((int(i1)*64 + int(i2)) % 1024), nil
}

// EncodeTilePair is the inverse of DecodeTilePair.
func EncodeTilePair(tile uint16) [2]byte {
	t := int(tile) % 1024
	return [2]byte{base64Alphabet[t/64], base64Alphabet[t%64]}
}

// DecodeBoardLine decodes a BOARD line's `encoded` field (spec §4.6) into
// up to w tiles for one row of a level.
func DecodeBoardLine(encoded string, w int) ([]uint16, error) {
	if len(encoded) < w*2 {
		return nil, perr.New(perr.BadPacket, "BOARD line shorter than declared width")
	}
	out := make([]uint16, w)
	for i := 0; i < w; i++ {
		tile, err := DecodeTilePair(encoded[i*2], encoded[i*2+1])
		if err != nil {
			return nil, err
		}
		out[i] = tile
	}
	return out, nil
}
