package session

import (
	"strings"

	"github.com/hosler/pyreborn-go/internal/packet"
	"github.com/hosler/pyreborn-go/internal/perr"
)

// requireAuthenticated returns ProtocolState/NotReady if the session has
// not completed its handshake (spec §4.8: "Outbound actions allowed only
// in this state; actions invoked earlier return NotReady").
func (s *Session) requireAuthenticated(op string) error {
	if s.State() != Authenticated {
		return perr.New(perr.ProtocolState, op+": session not authenticated")
	}
	return nil
}

// MoveTo sends the player's new position (local x/y, or x2/y2 while a gmap
// segment is active) and sprite/direction (spec §6: "move_to").
func (s *Session) MoveTo(x, y float64, direction int) error {
	if err := s.requireAuthenticated("move_to"); err != nil {
		return err
	}
	s.world.Local.SetLocalXY(x, y)
	s.world.Local.Dir = direction
	s.crossSegmentIfNeeded()

	w := packet.NewWriter(packet.IDOutPlayerProps)
	if s.world.Local.X2 != nil && s.world.Local.Y2 != nil {
		writePropInt7(w, 78, int64(*s.world.Local.X2*16), 2)
		writePropInt7(w, 79, int64(*s.world.Local.Y2*16), 2)
	} else {
		w.WriteByte(15) // X
		w.WriteRawByte(byte(int(x * 2)))
		w.WriteByte(16) // Y
		w.WriteRawByte(byte(int(y * 2)))
	}
	w.WriteByte(17) // SPRITE
	w.WriteByte(byte(direction))
	return s.enqueue(w.Bytes())
}

func writePropInt7(w *packet.Writer, id byte, v int64, n int) {
	w.WriteByte(id)
	w.WriteInt(v, n)
}

// crossSegmentIfNeeded detects a GMAP segment-boundary crossing after a
// local move and applies it (spec §4.9, §8 scenario 4: "crossing east at
// x >= 64 wraps local x and advances gmaplevelx"). It is a no-op unless a
// GMAP segment is currently active (GmapLevelX/Y set).
func (s *Session) crossSegmentIfNeeded() {
	p := s.world.Local
	if p.GmapLevelX == nil || p.GmapLevelY == nil {
		return
	}

	switch {
	case p.X >= 64:
		p.CrossSegmentEast()
	case p.X < 0:
		p.CrossSegmentWest()
	case p.Y >= 64:
		p.CrossSegmentSouth()
	case p.Y < 0:
		p.CrossSegmentNorth()
	default:
		return
	}

	s.requestChildLevelFile(*p.GmapLevelX, *p.GmapLevelY)
}

// requestChildLevelFile issues wantfile for the GMAP child level at
// (col, row), unless it is already cached or the manifest has not been
// loaded yet (spec §4.9: "issues wantfile for the new child level if not
// cached").
func (s *Session) requestChildLevelFile(col, row int) {
	if s.world.CurrentGMap == nil {
		return
	}
	name, ok := s.world.CurrentGMap.Segment(col, row)
	if !ok {
		return
	}
	if _, cached := s.world.Level(name); cached {
		return
	}
	_ = s.WantFile(name)
}

// SetNickname sends a NICKNAME property update.
func (s *Session) SetNickname(nick string) error {
	return s.sendSingleStringProp("set_nickname", 0, nick)
}

// SetChat sets the player's persistent status line (CURCHAT semantics
// differ from a one-shot Say by persisting until replaced).
func (s *Session) SetChat(text string) error {
	return s.sendSingleStringProp("set_chat", 12, text)
}

// Say broadcasts a chat bubble message to the current level (spec §6).
func (s *Session) Say(text string) error {
	if err := s.requireAuthenticated("say"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutToAll)
	w.WriteBytes([]byte(text))
	return s.enqueue(w.Bytes())
}

// PrivateMessage sends a direct message to playerID.
func (s *Session) PrivateMessage(playerID int, text string) error {
	if err := s.requireAuthenticated("private_message"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutPrivateMessage)
	w.WriteInt(int64(playerID), 2)
	w.WriteBytes([]byte(text))
	return s.enqueue(w.Bytes())
}

// SetHeadImage, SetBodyImage, SetShieldImage, SetSwordImage update one
// appearance slot each (spec §6).
func (s *Session) SetHeadImage(name string) error   { return s.sendHeadgifProp(name) }
func (s *Session) SetBodyImage(name string) error   { return s.sendGaniLikeProp(10, name) }
func (s *Session) SetShieldImage(name string) error { return s.sendGaniLikeProp(9, name) }
func (s *Session) SetSwordImage(name string) error  { return s.sendGaniLikeProp(8, name) }

func (s *Session) sendHeadgifProp(name string) error {
	if err := s.requireAuthenticated("set_head_image"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutPlayerProps)
	w.WriteByte(11) // HEADGIF
	w.WriteHeadgifString(name)
	return s.enqueue(w.Bytes())
}

func (s *Session) sendGaniLikeProp(id byte, value string) error {
	if err := s.requireAuthenticated("set_image"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutPlayerProps)
	w.WriteByte(id)
	w.WriteString(value)
	return s.enqueue(w.Bytes())
}

func (s *Session) sendSingleStringProp(op string, id byte, value string) error {
	if err := s.requireAuthenticated(op); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutPlayerProps)
	w.WriteByte(id)
	w.WriteString(value)
	return s.enqueue(w.Bytes())
}

// SetColors sends the five appearance color indices (spec §6).
func (s *Session) SetColors(colors [5]byte) error {
	if err := s.requireAuthenticated("set_colors"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutPlayerProps)
	w.WriteByte(13) // COLORS
	for _, c := range colors {
		w.WriteByte(c)
	}
	return s.enqueue(w.Bytes())
}

// DropBomb places a bomb at the local player's position with the given
// power.
func (s *Session) DropBomb(power int) error {
	if err := s.requireAuthenticated("drop_bomb"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutBombAdd)
	w.WriteRawByte(byte(int(s.world.Local.X * 2)))
	w.WriteRawByte(byte(int(s.world.Local.Y * 2)))
	w.WriteByte(byte(power))
	return s.enqueue(w.Bytes())
}

// ShootArrow fires an arrow from the local player's current position and
// direction.
func (s *Session) ShootArrow() error {
	if err := s.requireAuthenticated("shoot_arrow"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutArrowAdd)
	w.WriteRawByte(byte(int(s.world.Local.X * 2)))
	w.WriteRawByte(byte(int(s.world.Local.Y * 2)))
	w.WriteByte(byte(s.world.Local.Dir))
	return s.enqueue(w.Bytes())
}

// FireEffect triggers the player's fire-sword effect.
func (s *Session) FireEffect() error {
	if err := s.requireAuthenticated("fire_effect"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutFireSpy)
	return s.enqueue(w.Bytes())
}

// WarpTo requests a warp to (x, y) in levelName.
func (s *Session) WarpTo(x, y float64, levelName string) error {
	if err := s.requireAuthenticated("warp_to"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutPlayerWarp)
	w.WriteRawByte(byte(int(x * 2)))
	w.WriteRawByte(byte(int(y * 2)))
	w.WriteString(levelName)
	return s.enqueue(w.Bytes())
}

// WantFile requests download of a named asset/level file (spec §4.9, §6).
func (s *Session) WantFile(name string) error {
	if err := s.requireAuthenticated("want_file"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutWantFile)
	w.WriteBytes([]byte(name))
	return s.enqueue(w.Bytes())
}

// RequestUpdateBoard asks the server to resend a rectangle of the named
// level's board.
func (s *Session) RequestUpdateBoard(levelName string, x, y, w2, h int) error {
	if err := s.requireAuthenticated("request_update_board"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutRequestUpdateBoard)
	w.WriteString(levelName)
	w.WriteByte(byte(x))
	w.WriteByte(byte(y))
	w.WriteByte(byte(w2))
	w.WriteByte(byte(h))
	return s.enqueue(w.Bytes())
}

// SetFlag sets a server-side named flag to value.
func (s *Session) SetFlag(name, value string) error {
	if err := s.requireAuthenticated("set_flag"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutFlagSet)
	w.WriteBytes([]byte(name + "=" + value))
	return s.enqueue(w.Bytes())
}

// TriggerAction sends a named server action with opaque arguments.
func (s *Session) TriggerAction(name string, args []string) error {
	if err := s.requireAuthenticated("trigger_action"); err != nil {
		return err
	}
	w := packet.NewWriter(packet.IDOutRequestText)
	w.WriteBytes([]byte(strings.Join(append([]string{name}, args...), ",")))
	return s.enqueue(w.Bytes())
}

// CurrentLevel returns the current level name tracked by the world model.
func (s *Session) CurrentLevel() string { return s.world.CurrentLevel }
