package board

import (
	"strings"
	"testing"
)

func TestDecodeTilePairWorkedExample(t *testing.T) {
	// spec scenario 5: 'J','4' -> (9*64 + 56) mod 1024 = 632.
	tile, err := DecodeTilePair('J', '4')
	if err != nil {
		t.Fatalf("DecodeTilePair: %v", err)
	}
	if tile != 632 {
		t.Fatalf("tile = %d, want 632", tile)
	}
}

func TestEncodeBoardWorkedExample(t *testing.T) {
	var tiles [TileCount]uint16
	tiles[0] = 632
	out := EncodeBoard(tiles)
	if out[0] != 0x78 || out[1] != 0x02 {
		t.Fatalf("bytes = %#x %#x, want 0x78 0x02", out[0], out[1])
	}
}

func TestDecodeBoardRoundTrip(t *testing.T) {
	var tiles [TileCount]uint16
	for i := range tiles {
		tiles[i] = uint16(i % 1024)
	}
	wire := EncodeBoard(tiles)
	got, err := DecodeBoard(wire)
	if err != nil {
		t.Fatalf("DecodeBoard: %v", err)
	}
	if got != tiles {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecodeBoardWrongLength(t *testing.T) {
	if _, err := DecodeBoard(make([]byte, 10)); err == nil {
		t.Fatal("expected error for short board payload")
	}
}

func TestDecodeBoardLine(t *testing.T) {
	tiles, err := DecodeBoardLine("J4J4", 2)
	if err != nil {
		t.Fatalf("DecodeBoardLine: %v", err)
	}
	if tiles[0] != 632 || tiles[1] != 632 {
		t.Fatalf("tiles = %v, want [632 632]", tiles)
	}
}

func TestParseLevelBoardAndSign(t *testing.T) {
	src := "GLEVNW01\n" +
		"BOARD 0 0 2 1 J4J4\n" +
		"SIGN 1 2 Welcome traveler\n"
	lvl, err := ParseLevel("test.nw", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}
	if lvl.Tiles[0] != 632 || lvl.Tiles[1] != 632 {
		t.Fatalf("board tiles not applied: %v %v", lvl.Tiles[0], lvl.Tiles[1])
	}
	if len(lvl.Signs) != 1 || lvl.Signs[0].Text != "Welcome traveler" {
		t.Fatalf("sign not parsed: %+v", lvl.Signs)
	}
}

func TestParseGMap(t *testing.T) {
	src := "WIDTH 2\nHEIGHT 2\nLEVELNAMES\n" +
		"a1.nw,a2.nw\n" +
		"b1.nw,b2.nw\n" +
		"LEVELNAMESEND\n"
	g, err := ParseGMap("world.gmap", strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseGMap: %v", err)
	}
	if !g.Complete() {
		t.Fatal("gmap should be complete")
	}
	name, ok := g.Segment(1, 0)
	if !ok || name != "a2.nw" {
		t.Fatalf("segment(1,0) = %q, %v", name, ok)
	}
}
