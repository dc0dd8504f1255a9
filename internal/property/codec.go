package property

import (
	"github.com/hosler/pyreborn-go/internal/packet"
	"github.com/hosler/pyreborn-go/internal/perr"
)

// SwordProps is the composite SWORDPOWER payload (spec §4.5, property id 8).
type SwordProps struct {
	Power int
	Image string
}

// Props is the decoded form of a playerprops/otherplprops stream. Pointer
// fields distinguish "not present in this stream" from zero values, so that
// Decode(Encode(p)) == p holds only over the fields that were actually set
// (spec §8).
type Props struct {
	Nickname *string
	MaxPower *int
	CurPower *int
	Rupees   *int
	Arrows   *int
	Bombs    *int

	GlovePower  *int
	BombPower   *int
	SwordPower  *SwordProps
	ShieldPower *int

	Gani        *string
	Headgif     *string
	CurChat     *string
	Colors      *[5]int
	PlayerID    *int
	X           *float64
	Y           *float64
	Sprite      *int
	Status      *int
	CarrySprite *int
	CurLevel    *string

	GAttrib [30]*string

	X2 *float64
	Y2 *float64
	Z2 *float64

	GmapLevelX *int
	GmapLevelY *int

	OnlineSecs         *int
	PlayerListCategory *string
	CommunityName      *string
	OSType             *int
	TextCodePage       *int

	// Unknown collects property ids with no registered decoder. An id read
	// by the best-effort length-prefixed fallback maps to its raw bytes; the
	// id that stopped decoding (the fallback did not apply cleanly) maps to
	// nil.
	Unknown map[ID][]byte
}

// plainByteIDs are single-byte numeric properties using the universal
// raw-32 rule (spec §4.5). X/Y are deliberately excluded: spec's worked
// example (§8 scenario 3) encodes them with no +32 offset, so they get
// their own case in Encode/Decode below.
var plainByteIDs = []ID{MaxPower, CurPower, Rupees, Arrows, Bombs, GlovePower, BombPower, ShieldPower, Sprite, Status, CarrySprite}

// halfTilePositionEncode packs a tile coordinate (0.5 precision) into the
// single wire byte used by X/Y: stored = floor(tile*2), written verbatim
// with no +32 offset.
func halfTilePositionEncode(tile float64) byte {
	return byte(int(tile * 2))
}

func halfTilePositionDecode(raw byte) float64 {
	return float64(raw) / 2.0
}

// Encode serializes p into a property-stream body (no surrounding packet
// id/frame — that's the caller's job via packet.Writer at a higher level).
func Encode(p Props) []byte {
	w := newBodyWriter()

	if p.Nickname != nil {
		w.str(Nickname, *p.Nickname)
	}
	for _, id := range plainByteIDs {
		if v := p.fieldFor(id); v != nil {
			w.byte32(id, byte(*v))
		}
	}
	if p.X != nil {
		w.rawByte(X, halfTilePositionEncode(*p.X))
	}
	if p.Y != nil {
		w.rawByte(Y, halfTilePositionEncode(*p.Y))
	}
	if p.SwordPower != nil {
		w.sword(*p.SwordPower)
	}
	if p.Gani != nil {
		w.str(Gani, *p.Gani)
	}
	if p.Headgif != nil {
		w.headgif(*p.Headgif)
	}
	if p.CurChat != nil {
		w.str(CurChat, *p.CurChat)
	}
	if p.Colors != nil {
		w.colors(*p.Colors)
	}
	if p.PlayerID != nil {
		w.int7(PlayerID, int64(*p.PlayerID), 2)
	}
	if p.CurLevel != nil {
		w.str(CurLevel, *p.CurLevel)
	}
	for i := 1; i <= 30; i++ {
		if s := p.GAttrib[i-1]; s != nil {
			w.str(GattribID(i), *s)
		}
	}
	if p.X2 != nil {
		w.int7(X2, int64(*p.X2*16), 2)
	}
	if p.Y2 != nil {
		w.int7(Y2, int64(*p.Y2*16), 2)
	}
	if p.Z2 != nil {
		w.int7(Z2, int64(*p.Z2*16), 2)
	}
	if p.GmapLevelX != nil {
		w.byte32(GmapLevelX, byte(*p.GmapLevelX))
	}
	if p.GmapLevelY != nil {
		w.byte32(GmapLevelY, byte(*p.GmapLevelY))
	}
	if p.OnlineSecs != nil {
		w.int7(OnlineSecs, int64(*p.OnlineSecs), 4)
	}
	if p.PlayerListCategory != nil {
		w.str(PlayerListCategory, *p.PlayerListCategory)
	}
	if p.CommunityName != nil {
		w.str(CommunityName, *p.CommunityName)
	}
	if p.OSType != nil {
		w.byte32(OSType, byte(*p.OSType))
	}
	if p.TextCodePage != nil {
		w.byte32(TextCodePage, byte(*p.TextCodePage))
	}
	for id, raw := range p.Unknown {
		w.raw(id, raw)
	}

	return w.buf
}

func (p Props) fieldFor(id ID) *int {
	switch id {
	case MaxPower:
		return p.MaxPower
	case CurPower:
		return p.CurPower
	case Rupees:
		return p.Rupees
	case Arrows:
		return p.Arrows
	case Bombs:
		return p.Bombs
	case GlovePower:
		return p.GlovePower
	case BombPower:
		return p.BombPower
	case ShieldPower:
		return p.ShieldPower
	case Sprite:
		return p.Sprite
	case Status:
		return p.Status
	case CarrySprite:
		return p.CarrySprite
	default:
		return nil
	}
}

// Decode parses a property-stream body until exhausted. On encountering an
// id with no registered decoder and no usable fallback, it returns
// perr.UnknownProperty and the partially decoded Props — callers should
// treat this as non-fatal and drop the remainder of the stream (spec §7).
func Decode(body []byte) (Props, error) {
	var p Props
	r := packet.NewReader(body)

	for r.Remaining() > 0 {
		id := ID(r.ReadByte())
		if err := decodeOne(&p, id, r); err != nil {
			return p, err
		}
	}
	return p, nil
}

func decodeOne(p *Props, id ID, r *packet.Reader) error {
	switch id {
	case Nickname:
		s := r.ReadString()
		p.Nickname = &s
	case Gani:
		s := r.ReadString()
		p.Gani = &s
	case Headgif:
		s := r.ReadHeadgifString()
		p.Headgif = &s
	case CurChat:
		s := r.ReadString()
		p.CurChat = &s
	case CurLevel:
		s := r.ReadString()
		p.CurLevel = &s
	case PlayerListCategory:
		s := r.ReadString()
		p.PlayerListCategory = &s
	case CommunityName:
		s := r.ReadString()
		p.CommunityName = &s
	case SwordPower:
		declared := int(r.ReadByte())
		power := int(r.ReadRawByte()) - 30
		img := r.ReadFixedString(declared - 1)
		p.SwordPower = &SwordProps{Power: power, Image: img}
	case Colors:
		var c [5]int
		for i := 0; i < 5; i++ {
			c[i] = int(r.ReadByte())
		}
		p.Colors = &c
	case PlayerID:
		v := int(r.ReadInt(2))
		p.PlayerID = &v
	case X:
		v := halfTilePositionDecode(r.ReadRawByte())
		p.X = &v
	case Y:
		v := halfTilePositionDecode(r.ReadRawByte())
		p.Y = &v
	case X2:
		v := float64(r.ReadInt(2)) / 16.0
		p.X2 = &v
	case Y2:
		v := float64(r.ReadInt(2)) / 16.0
		p.Y2 = &v
	case Z2:
		v := float64(r.ReadInt(2)) / 16.0
		p.Z2 = &v
	case GmapLevelX:
		v := int(r.ReadByte())
		p.GmapLevelX = &v
	case GmapLevelY:
		v := int(r.ReadByte())
		p.GmapLevelY = &v
	case OnlineSecs:
		v := int(r.ReadInt(4))
		p.OnlineSecs = &v
	case OSType:
		v := int(r.ReadByte())
		p.OSType = &v
	case TextCodePage:
		v := int(r.ReadByte())
		p.TextCodePage = &v
	default:
		if slot := gattribSlot(id); slot > 0 {
			s := r.ReadString()
			p.GAttrib[slot-1] = &s
			return nil
		}
		if v := plainByteField(id); v != nil {
			*v = int(r.ReadByte())
			assignField(p, id, *v)
			return nil
		}
		return decodeFallback(p, id, r)
	}
	return nil
}

func plainByteField(id ID) *int {
	for _, pid := range plainByteIDs {
		if pid == id {
			v := 0
			return &v
		}
	}
	return nil
}

func assignField(p *Props, id ID, v int) {
	switch id {
	case MaxPower:
		p.MaxPower = &v
	case CurPower:
		p.CurPower = &v
	case Rupees:
		p.Rupees = &v
	case Arrows:
		p.Arrows = &v
	case Bombs:
		p.Bombs = &v
	case GlovePower:
		p.GlovePower = &v
	case BombPower:
		p.BombPower = &v
	case ShieldPower:
		p.ShieldPower = &v
	case Sprite:
		p.Sprite = &v
	case Status:
		p.Status = &v
	case CarrySprite:
		p.CarrySprite = &v
	}
}

// decodeFallback applies the best-effort "most properties are length-
// prefixed strings" heuristic (spec §4.5). If the declared length would run
// past the end of the body, the id is truly unknown to this decoder.
func decodeFallback(p *Props, id ID, r *packet.Reader) error {
	if r.Remaining() == 0 {
		return unknown(p, id, nil)
	}
	n := int(r.ReadByte())
	if n > r.Remaining() {
		return unknown(p, id, nil)
	}
	raw := r.ReadBytes(n)
	if p.Unknown == nil {
		p.Unknown = make(map[ID][]byte)
	}
	p.Unknown[id] = raw
	return nil
}

func unknown(p *Props, id ID, raw []byte) error {
	if p.Unknown == nil {
		p.Unknown = make(map[ID][]byte)
	}
	p.Unknown[id] = raw
	return perr.New(perr.UnknownProperty, "property id has no decoder")
}

// bodyWriter accumulates the raw [id+32][data] records of a property
// stream.
type bodyWriter struct{ buf []byte }

func newBodyWriter() *bodyWriter { return &bodyWriter{buf: make([]byte, 0, 32)} }

func (w *bodyWriter) byte32(id ID, v byte) {
	w.buf = append(w.buf, byte(id)+32, v+32)
}

func (w *bodyWriter) rawByte(id ID, v byte) {
	w.buf = append(w.buf, byte(id)+32, v)
}

func (w *bodyWriter) int7(id ID, v int64, n int) {
	w.buf = append(w.buf, byte(id)+32)
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, byte((v>>uint(7*i))&0x7F)+32)
	}
}

func (w *bodyWriter) str(id ID, s string) {
	w.buf = append(w.buf, byte(id)+32, byte(len(s))+32)
	w.buf = append(w.buf, s...)
}

func (w *bodyWriter) headgif(s string) {
	w.buf = append(w.buf, byte(Headgif)+32, byte(len(s)+100))
	w.buf = append(w.buf, s...)
}

func (w *bodyWriter) colors(c [5]int) {
	w.buf = append(w.buf, byte(Colors)+32)
	for _, v := range c {
		w.buf = append(w.buf, byte(v)+32)
	}
}

func (w *bodyWriter) sword(s SwordProps) {
	body := make([]byte, 0, 1+len(s.Image))
	body = append(body, byte(s.Power+30))
	body = append(body, s.Image...)
	w.buf = append(w.buf, byte(SwordPower)+32, byte(len(body))+32)
	w.buf = append(w.buf, body...)
}

func (w *bodyWriter) raw(id ID, raw []byte) {
	w.buf = append(w.buf, byte(id)+32, byte(len(raw))+32)
	w.buf = append(w.buf, raw...)
}
