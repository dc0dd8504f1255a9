package world

// Player is one avatar in the world model: the local player or a remote
// player observed via playerprops/otherplprops packets (spec §3).
//
// Accessed only from the session's receive task and from callers going
// through Session's read-only accessors — no internal locking.
type Player struct {
	ID      int
	Account string
	Nickname string

	X, Y   float64
	X2, Y2 *float64
	Z2     *float64

	GmapLevelX *int
	GmapLevelY *int

	Dir int // facing, 0..3

	HeadImage   string
	BodyImage   string
	ShieldImage string
	SwordImage  string
	SwordPower  int
	Colors      [5]int
	Sprite      int

	MaxPower    int
	CurPower    int
	Rupees      int
	Arrows      int
	Bombs       int
	AP          int
	GlovePower  int
	BombPower   int
	ShieldPower int

	Status      int
	CurLevel    string
	Gani        string
	CurChat     string
	CarrySprite int

	PlayerListCategory string
	CommunityName      string
	OSType             int
	TextCodePage       int

	GAttrib [30]string
}

// SetLocalXY updates local tile coordinates and re-derives the
// high-precision x2/y2 pair when a GMAP segment is active (spec §3, §8
// scenario "Coordinate synchronization": x2 == gmaplevelx*64 + x).
func (p *Player) SetLocalXY(x, y float64) {
	p.X, p.Y = x, y
	if p.GmapLevelX != nil {
		x2 := float64(*p.GmapLevelX)*64 + x
		p.X2 = &x2
	}
	if p.GmapLevelY != nil {
		y2 := float64(*p.GmapLevelY)*64 + y
		p.Y2 = &y2
	}
}

// SetHighPrecisionXY updates x2/y2 and re-derives local x/y and, when not
// already set, the GMAP segment indices (spec §3, §8: x == x2 mod 64,
// gmaplevelx == floor(x2/64) when unset).
func (p *Player) SetHighPrecisionXY(x2, y2 float64) {
	p.X2, p.Y2 = &x2, &y2
	segX := int(x2) / 64
	segY := int(y2) / 64
	p.X = x2 - float64(segX)*64
	p.Y = y2 - float64(segY)*64
	if p.GmapLevelX == nil {
		p.GmapLevelX = &segX
	}
	if p.GmapLevelY == nil {
		p.GmapLevelY = &segY
	}
}

// CrossSegmentEast advances the player by one GMAP segment to the east,
// wrapping local x (spec §8 scenario 4: "crossing east at x >= 64").
func (p *Player) CrossSegmentEast() {
	p.X -= 64
	gx := 0
	if p.GmapLevelX != nil {
		gx = *p.GmapLevelX
	}
	gx++
	p.GmapLevelX = &gx
	p.SetLocalXY(p.X, p.Y)
}

// CrossSegmentWest is the mirror of CrossSegmentEast.
func (p *Player) CrossSegmentWest() {
	p.X += 64
	gx := 0
	if p.GmapLevelX != nil {
		gx = *p.GmapLevelX
	}
	gx--
	p.GmapLevelX = &gx
	p.SetLocalXY(p.X, p.Y)
}

// CrossSegmentSouth advances the player by one GMAP segment to the south.
func (p *Player) CrossSegmentSouth() {
	p.Y -= 64
	gy := 0
	if p.GmapLevelY != nil {
		gy = *p.GmapLevelY
	}
	gy++
	p.GmapLevelY = &gy
	p.SetLocalXY(p.X, p.Y)
}

// CrossSegmentNorth is the mirror of CrossSegmentSouth.
func (p *Player) CrossSegmentNorth() {
	p.Y += 64
	gy := 0
	if p.GmapLevelY != nil {
		gy = *p.GmapLevelY
	}
	gy--
	p.GmapLevelY = &gy
	p.SetLocalXY(p.X, p.Y)
}
