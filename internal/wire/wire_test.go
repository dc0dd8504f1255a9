package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hosler/pyreborn-go/internal/cipher"
)

func TestFrameRoundTrip(t *testing.T) {
	payload := []byte("hello\nworld\n")
	var buf bytes.Buffer

	sendC := cipher.New(0x11)
	if err := WriteFrame(&buf, sendC, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	recvC := cipher.New(0x11)
	got, err := ReadFrame(&buf, recvC)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %q, want %q", got, payload)
	}
}

func TestCompressionSelectionThreshold(t *testing.T) {
	small := bytes.Repeat([]byte("a"), uncompressedThreshold)
	if ct, _ := Compress(small); ct != Uncompressed {
		t.Fatalf("small payload compressed as %v, want Uncompressed", ct)
	}

	large := bytes.Repeat([]byte("a"), uncompressedThreshold+1)
	if ct, _ := Compress(large); ct != Zlib {
		t.Fatalf("large payload compressed as %v, want Zlib", ct)
	}
}

func TestFrameRoundTripCompressed(t *testing.T) {
	payload := bytes.Repeat([]byte("pyreborn"), 20)
	var buf bytes.Buffer

	sendC := cipher.New(0x05)
	if err := WriteFrame(&buf, sendC, payload); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	recvC := cipher.New(0x05)
	got, err := ReadFrame(&buf, recvC)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("compressed round trip mismatch")
	}
}

func TestSplitBatch(t *testing.T) {
	parts := SplitBatch([]byte("a\nbb\nccc"))
	want := []string{"a", "bb", "ccc"}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(parts), len(want))
	}
	for i, p := range parts {
		if string(p) != want[i] {
			t.Fatalf("part %d = %q, want %q", i, p, want[i])
		}
	}
}

func TestSplitBatchTrailingNewline(t *testing.T) {
	parts := SplitBatch([]byte("a\nb\n"))
	if len(parts) != 2 || string(parts[0]) != "a" || string(parts[1]) != "b" {
		t.Fatalf("got %v", strings.Join(bytesToStrings(parts), ","))
	}
}

func bytesToStrings(bs [][]byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = string(b)
	}
	return out
}
