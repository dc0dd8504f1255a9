package session

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hosler/pyreborn-go/internal/board"
	"github.com/hosler/pyreborn-go/internal/event"
	"github.com/hosler/pyreborn-go/internal/packet"
	"github.com/hosler/pyreborn-go/internal/perr"
	"github.com/hosler/pyreborn-go/internal/property"
	"github.com/hosler/pyreborn-go/internal/world"
)

// dispatch decodes one logical packet's id and routes it to a handler,
// mutating the world model and emitting events inline (spec §4.10: "fanned
// out synchronously inside the receive loop"). Non-fatal errors (BadPacket,
// UnknownProperty) are returned to the caller, which logs and continues;
// fatal kinds propagate and end the session.
func (s *Session) dispatch(raw []byte) error {
	if len(raw) == 0 {
		return nil
	}
	id := raw[0] - 32
	body := raw[1:]
	r := packet.NewReader(body)

	switch id {
	case packet.IDSignature:
		s.setState(Authenticated)
		event.Emit(s.bus, event.Authenticated{})
		return nil

	case packet.IDDiscMessage:
		reason := string(r.ReadRest())
		go s.Disconnect(reason)
		return nil

	case packet.IDNewWorldTime:
		s.markHeartbeat()
		return nil

	case packet.IDPlayerProps:
		props, err := property.Decode(body)
		s.world.Local.ApplyProps(props)
		event.Emit(s.bus, event.PlayerUpdated{ID: s.world.Local.ID})
		return err

	case packet.IDOtherPlProps:
		pid := int(r.ReadInt(2))
		props, err := property.Decode(r.ReadRest())
		p, created := s.world.UpsertRemote(pid)
		p.ApplyProps(props)
		if created {
			event.Emit(s.bus, event.PlayerAdded{ID: pid})
		} else {
			event.Emit(s.bus, event.PlayerUpdated{ID: pid})
		}
		return err

	case packet.IDLevelName:
		name := string(r.ReadRest())
		s.world.SetCurrentLevel(name)
		event.Emit(s.bus, event.LevelEntered{Name: name})
		return nil

	case packet.IDLevelBoard:
		return s.handleRawBoard(body)

	case packet.IDRawData:
		s.pendingRaw = int(r.ReadInt(4))
		return nil

	case packet.IDBoardPacket:
		// Announced size already captured via the preceding rawdata packet;
		// the actual 8192 bytes arrive as the next, unsplit frame.
		return nil

	case packet.IDLevelSign:
		x := int(r.ReadByte())
		y := int(r.ReadByte())
		text := string(r.ReadRest())
		s.withCurrentLevel(func(l *world.Level) {
			l.Signs = append(l.Signs, world.Sign{X: x, Y: y, Text: text})
		})
		return nil

	case packet.IDLevelChest:
		x := int(r.ReadByte())
		y := int(r.ReadByte())
		item := r.ReadString()
		sign := string(r.ReadRest())
		s.withCurrentLevel(func(l *world.Level) {
			l.Chests = append(l.Chests, world.Chest{X: x, Y: y, Item: item, Sign: sign})
		})
		return nil

	case packet.IDLevelLink:
		fields := strings.Fields(string(r.ReadRest()))
		if len(fields) < 6 {
			return perr.New(perr.BadPacket, "levellink: too few fields")
		}
		dest := fields[0]
		x, _ := strconv.Atoi(fields[1])
		y, _ := strconv.Atoi(fields[2])
		w, _ := strconv.Atoi(fields[3])
		h, _ := strconv.Atoi(fields[4])
		dx, _ := strconv.ParseFloat(fields[5], 64)
		dy := 0.0
		if len(fields) > 6 {
			dy, _ = strconv.ParseFloat(fields[6], 64)
		}
		s.withCurrentLevel(func(l *world.Level) {
			l.Links = append(l.Links, world.Link{X: x, Y: y, W: w, H: h, DestLevel: dest, DestX: dx, DestY: dy})
		})
		return nil

	case packet.IDItemAdd:
		x := int(r.ReadByte())
		y := int(r.ReadByte())
		kind := string(r.ReadRest())
		s.withCurrentLevel(func(l *world.Level) {
			l.Items = append(l.Items, &world.Item{X: x, Y: y, Kind: kind})
		})
		event.Emit(s.bus, event.ItemAdded{X: x, Y: y, Kind: kind})
		return nil

	case packet.IDItemDel:
		x := int(r.ReadByte())
		y := int(r.ReadByte())
		s.withCurrentLevel(func(l *world.Level) {
			out := l.Items[:0]
			for _, it := range l.Items {
				if it.X != x || it.Y != y {
					out = append(out, it)
				}
			}
			l.Items = out
		})
		event.Emit(s.bus, event.ItemRemoved{X: x, Y: y})
		return nil

	case packet.IDNpcProps, packet.IDBaddyProps:
		npcID := int32(r.ReadInt(4))
		props, err := property.Decode(r.ReadRest())
		s.applyNpcProps(npcID, props)
		return err

	case packet.IDNpcDel:
		npcID := int32(r.ReadInt(4))
		s.withCurrentLevel(func(l *world.Level) {
			out := l.NPCs[:0]
			for _, n := range l.NPCs {
				if n.ID != npcID {
					out = append(out, n)
				}
			}
			l.NPCs = out
		})
		return nil

	case packet.IDToAll:
		pid := int(r.ReadInt(2))
		text := string(r.ReadRest())
		event.Emit(s.bus, event.ChatMessage{ID: pid, Text: text})
		return nil

	case packet.IDPrivateMessage:
		from := int(r.ReadInt(2))
		text := string(r.ReadRest())
		event.Emit(s.bus, event.PrivateMessage{From: from, Text: text})
		return nil

	case packet.IDTriggerAction:
		parts := strings.Split(string(r.ReadRest()), ",")
		name := ""
		var args []string
		if len(parts) > 0 {
			name = parts[0]
			args = parts[1:]
		}
		event.Emit(s.bus, event.TriggerAction{Name: name, Args: args})
		return nil

	case packet.IDExplosion:
		x := float64(r.ReadByte()) / 2
		y := float64(r.ReadByte()) / 2
		power := int(r.ReadByte())
		event.Emit(s.bus, event.Explosion{X: x, Y: y, Power: power})
		return nil

	case packet.IDHurtPlayer:
		target := int(r.ReadInt(2))
		damage := int(r.ReadByte())
		event.Emit(s.bus, event.Hurt{Target: target, Damage: damage})
		return nil

	default:
		event.Emit(s.bus, event.UnknownPacket{ID: id, Body: body})
		return nil
	}
}

func (s *Session) markHeartbeat() {
	s.lastHeartbeat.Store(time.Now().UnixNano())
}

// withCurrentLevel runs fn against the current level, creating it in the
// level cache first if this is the first reference to it.
func (s *Session) withCurrentLevel(fn func(*world.Level)) {
	name := s.world.CurrentLevel
	if name == "" {
		return
	}
	lvl, ok := s.world.Level(name)
	if !ok {
		lvl = world.NewLevel(name)
		s.world.Levels.Put(name, lvl)
	}
	fn(lvl)
}

func (s *Session) applyNpcProps(npcID int32, props property.Props) {
	name := s.world.CurrentLevel
	if name == "" {
		return
	}
	lvl, ok := s.world.Level(name)
	if !ok {
		lvl = world.NewLevel(name)
		s.world.Levels.Put(name, lvl)
	}
	var n *world.NPC
	for _, existing := range lvl.NPCs {
		if existing.ID == npcID {
			n = existing
			break
		}
	}
	if n == nil {
		n = &world.NPC{ID: npcID, Visible: true}
		lvl.NPCs = append(lvl.NPCs, n)
	}
	if props.X != nil {
		n.X = *props.X
	}
	if props.Y != nil {
		n.Y = *props.Y
	}
	if props.Gani != nil {
		n.Image = *props.Gani
	}
}

// handleRawBoard decodes an 8192-byte raw block into the current level's
// board (spec §4.6: levelboard/boardpacket wire form).
func (s *Session) handleRawBoard(data []byte) error {
	tiles, err := board.DecodeBoard(data)
	if err != nil {
		return err
	}
	name := s.world.CurrentLevel
	s.withCurrentLevel(func(l *world.Level) {
		l.SetTiles(tiles)
	})
	if name != "" {
		event.Emit(s.bus, event.LevelBoardLoaded{Name: name})
	}
	s.log.Debug("board decoded", zap.String("level", name))
	return nil
}
