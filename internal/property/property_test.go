package property

import (
	"bytes"
	"testing"
)

func TestEncodeWorkedExample(t *testing.T) {
	nick := "Bob"
	x := 30.5
	colors := [5]int{10, 20, 5, 7, 3}
	p := Props{Nickname: &nick, X: &x, Colors: &colors}

	got := Encode(p)
	want := []byte{0x20, 0x23, 'B', 'o', 'b', 0x2F, 0x3D, 0x2D, 0x2A, 0x34, 0x25, 0x27, 0x23}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode = %#v, want %#v", got, want)
	}
}

func TestDecodeWorkedExample(t *testing.T) {
	body := []byte{0x20, 0x23, 'B', 'o', 'b', 0x2F, 0x3D, 0x2D, 0x2A, 0x34, 0x25, 0x27, 0x23}
	p, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if p.Nickname == nil || *p.Nickname != "Bob" {
		t.Fatalf("Nickname = %v, want Bob", p.Nickname)
	}
	if p.X == nil || *p.X != 30.5 {
		t.Fatalf("X = %v, want 30.5", p.X)
	}
	if p.Colors == nil || *p.Colors != [5]int{10, 20, 5, 7, 3} {
		t.Fatalf("Colors = %v, want [10 20 5 7 3]", p.Colors)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	maxPower := 5
	rupees := 200
	gani := "idle"
	p := Props{MaxPower: &maxPower, Rupees: &rupees, Gani: &gani}

	got, err := Decode(Encode(p))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.MaxPower == nil || *got.MaxPower != maxPower {
		t.Fatalf("MaxPower = %v, want %d", got.MaxPower, maxPower)
	}
	if got.Rupees == nil || *got.Rupees != rupees {
		t.Fatalf("Rupees = %v, want %d", got.Rupees, rupees)
	}
	if got.Gani == nil || *got.Gani != gani {
		t.Fatalf("Gani = %v, want %q", got.Gani, gani)
	}
}

func TestDecodeUnknownPropertyIsNonFatal(t *testing.T) {
	// id 99 has no registered decoder and a too-large declared length, so
	// the fallback correctly reports UnknownProperty rather than panicking
	// or silently misreading the rest of the stream.
	body := []byte{99 + 32, 250}
	_, err := Decode(body)
	if err == nil {
		t.Fatal("expected UnknownProperty error")
	}
}

func TestGattribRoundTrip(t *testing.T) {
	var p Props
	v := "saved-value"
	p.GAttrib[6] = &v // slot 7, immediately before the reserved gap

	got, err := Decode(Encode(p))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.GAttrib[6] == nil || *got.GAttrib[6] != v {
		t.Fatalf("GAttrib[6] = %v, want %q", got.GAttrib[6], v)
	}
}
