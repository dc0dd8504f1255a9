// Package property implements the player-property stream codec: the
// tagged, sentinel-free [id+32][data...] sequence carried inside
// playerprops/otherplprops packets (spec §4.5).
package property

// ID identifies one player property. Values below follow the layout
// families named in spec §4.5; ids not listed here are still decodable via
// the generic fallback path in codec.go (best-effort skip, else
// UnknownProperty per spec §7).
type ID byte

const (
	Nickname      ID = 0
	MaxPower      ID = 1
	CurPower      ID = 2
	Rupees        ID = 3
	Arrows        ID = 4
	Bombs         ID = 5
	GlovePower    ID = 6
	BombPower     ID = 7
	SwordPower    ID = 8
	ShieldPower   ID = 9
	Gani          ID = 10
	Headgif       ID = 11
	CurChat       ID = 12
	Colors        ID = 13
	PlayerID      ID = 14
	X             ID = 15
	Y             ID = 16
	Sprite        ID = 17
	Status        ID = 18
	CarrySprite   ID = 19
	CurLevel      ID = 20

	// GATTRIB1..30 occupy ids 37..67 with one reserved gap immediately
	// after GATTRIB7 (spec §4.5, §9 open question — the exact gap position
	// is unspecified upstream; decoded/encoded symmetrically here either
	// way since both sides use the same GattribID() mapping).
	gattribBase     ID = 37
	gattribGapAfter    = 7
	gattribReserved ID = 44

	X2         ID = 78
	Y2         ID = 79
	Z2         ID = 80
	GmapLevelX ID = 81
	GmapLevelY ID = 82

	OnlineSecs         ID = 83
	PlayerListCategory ID = 84
	CommunityName      ID = 85
	OSType             ID = 86
	TextCodePage       ID = 87
)

// GattribID returns the wire id for the nth GATTRIB slot, n in 1..30.
func GattribID(n int) ID {
	id := gattribBase + ID(n-1)
	if n-1 >= gattribGapAfter {
		id++ // step over the reserved id
	}
	return id
}

// gattribSlot returns the 1-based GATTRIB slot number for a wire id, or 0
// if id is not a GATTRIB id.
func gattribSlot(id ID) int {
	if id == gattribReserved {
		return 0
	}
	if id < gattribBase {
		return 0
	}
	offset := int(id - gattribBase)
	if offset >= gattribGapAfter {
		offset-- // undo the reserved-id step
	}
	n := offset + 1
	if n < 1 || n > 30 {
		return 0
	}
	// Reject ids that only make sense once the gap is accounted for.
	if GattribID(n) != id {
		return 0
	}
	return n
}
