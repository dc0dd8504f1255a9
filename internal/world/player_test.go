package world

import "testing"

func TestSetLocalXYDerivesHighPrecision(t *testing.T) {
	var p Player
	gx := 2
	p.GmapLevelX = &gx

	p.SetLocalXY(10.5, 3)
	if p.X2 == nil || *p.X2 != 138.5 {
		t.Fatalf("X2 = %v, want 138.5 (gmaplevelx*64 + x)", p.X2)
	}
}

func TestSetHighPrecisionXYDerivesLocalAndSegment(t *testing.T) {
	var p Player
	p.SetHighPrecisionXY(128.5, 30.0)

	if p.X != 0.5 {
		t.Fatalf("X = %v, want 0.5", p.X)
	}
	if p.GmapLevelX == nil || *p.GmapLevelX != 2 {
		t.Fatalf("GmapLevelX = %v, want 2", p.GmapLevelX)
	}
}

func TestCrossSegmentEastWorkedExample(t *testing.T) {
	// spec §8 scenario 4: segment (1,1) at local (63.5, 30.0), moving east
	// by 1 tile lands on segment (2,1), local x 0.5, x2 128.5.
	var p Player
	gx, gy := 1, 1
	p.GmapLevelX, p.GmapLevelY = &gx, &gy
	p.SetLocalXY(63.5, 30.0)

	p.X += 1 // move east by one tile before crossing
	if p.X >= 64 {
		p.CrossSegmentEast()
	}

	if *p.GmapLevelX != 2 {
		t.Fatalf("GmapLevelX = %d, want 2", *p.GmapLevelX)
	}
	if p.X != 0.5 {
		t.Fatalf("X = %v, want 0.5", p.X)
	}
	if p.X2 == nil || *p.X2 != 128.5 {
		t.Fatalf("X2 = %v, want 128.5", p.X2)
	}
}

func TestCrossSegmentWestUndoesEast(t *testing.T) {
	var p Player
	gx := 2
	p.GmapLevelX = &gx
	p.SetLocalXY(0.5, 0)

	p.CrossSegmentWest()
	if *p.GmapLevelX != 1 {
		t.Fatalf("GmapLevelX = %d, want 1", *p.GmapLevelX)
	}
	if p.X != 64.5 {
		t.Fatalf("X = %v, want 64.5", p.X)
	}
}
