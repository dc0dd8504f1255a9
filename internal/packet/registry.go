package packet

import "fmt"

// Descriptor is one static registry entry: an id's direction, logical name,
// category, and whether its body is variable-length (spec §4.4).
type Descriptor struct {
	ID        byte
	Name      string
	Direction Direction
	Category  Category
	Variable  bool
}

// Registry is the static id→Descriptor table plus a Dispatch helper. It
// never mutates after construction by DefaultRegistry(), matching spec §4.4's "a
// static dispatch table indexed by id, with a fallback arm for unknown ids"
// design note (§9).
type Registry struct {
	byID map[byte]Descriptor
}

// HandlerFunc processes one decoded logical packet. Handlers must not
// perform blocking I/O (spec §4.7): they run inline in the receive task.
type HandlerFunc func(r *Reader) error

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[byte]Descriptor)}
}

// Register adds or replaces a descriptor.
func (reg *Registry) Register(d Descriptor) {
	reg.byID[d.ID] = d
}

// Lookup returns the descriptor for id, if registered.
func (reg *Registry) Lookup(id byte) (Descriptor, bool) {
	d, ok := reg.byID[id]
	return d, ok
}

// ByCategory returns every registered descriptor in the given category.
func (reg *Registry) ByCategory(cat Category) []Descriptor {
	var out []Descriptor
	for _, d := range reg.byID {
		if d.Category == cat {
			out = append(out, d)
		}
	}
	return out
}

// Dispatch decodes the logical id from a raw packet (the id byte followed
// by its body), looks up the handler table entry by id, and calls fn if
// provided. Unknown ids are not an error here — the caller is expected to
// emit an UnknownPacket event and continue (spec §4.10, §7).
func Dispatch(raw []byte, handlers map[byte]HandlerFunc) (Descriptor, bool, error) {
	if len(raw) == 0 {
		return Descriptor{}, false, fmt.Errorf("packet: empty logical packet")
	}
	id := raw[0] - 32
	fn, ok := handlers[id]
	if !ok {
		return Descriptor{ID: id}, false, nil
	}
	r := NewReader(raw[1:])
	if err := fn(r); err != nil {
		return Descriptor{ID: id}, true, err
	}
	return Descriptor{ID: id}, true, nil
}

// DefaultRegistry returns a registry pre-populated with the complete
// inbound/outbound id sets named in spec §4.4.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	inbound := []struct {
		id   byte
		name string
		cat  Category
		vary bool
	}{
		{IDLevelBoard, "levelboard", CategoryCore, false},
		{IDLevelLink, "levellink", CategoryCore, true},
		{IDBaddyProps, "baddyprops", CategoryNPCs, true},
		{IDNpcProps, "npcprops", CategoryNPCs, true},
		{IDLevelChest, "levelchest", CategoryCore, true},
		{IDLevelSign, "levelsign", CategoryCore, true},
		{IDLevelName, "levelname", CategoryCore, true},
		{IDBoardModify, "boardmodify", CategoryCore, true},
		{IDOtherPlProps, "otherplprops", CategoryCore, true},
		{IDPlayerProps, "playerprops", CategoryCore, true},
		{IDIsLeader, "isleader", CategorySystem, false},
		{IDBombAdd, "bombadd", CategoryCombat, true},
		{IDBombDel, "bombdel", CategoryCombat, true},
		{IDToAll, "toall", CategoryUI, true},
		{IDPlayerWarp, "playerwarp", CategoryCore, true},
		{IDWarpFailed, "warpfailed", CategorySystem, true},
		{IDDiscMessage, "discmessage", CategorySystem, true},
		{IDHorseAdd, "horseadd", CategoryNPCs, true},
		{IDHorseDel, "horsedel", CategoryNPCs, true},
		{IDArrowAdd, "arrowadd", CategoryCombat, true},
		{IDFireSpy, "firespy", CategoryCombat, true},
		{IDThrownCarried, "throwncarried", CategoryCombat, true},
		{IDItemAdd, "itemadd", CategoryCore, true},
		{IDItemDel, "itemdel", CategoryCore, true},
		{IDNpcMoved, "npcmoved", CategoryNPCs, true},
		{IDSignature, "signature", CategorySystem, false},
		{IDNpcAction, "npcaction", CategoryNPCs, true},
		{IDBaddyHurt, "baddyhurt", CategoryCombat, true},
		{IDFlagSet, "flagset", CategorySystem, true},
		{IDNpcDel, "npcdel", CategoryNPCs, true},
		{IDFileSendFailed, "filesendfailed", CategoryFiles, true},
		{IDFlagDel, "flagdel", CategorySystem, true},
		{IDShowImg, "showimg", CategoryUI, true},
		{IDNpcWeaponAdd, "npcweaponadd", CategoryNPCs, true},
		{IDNpcWeaponDel, "npcweapondel", CategoryNPCs, true},
		{IDRcAdminMessage, "rcadminmessage", CategorySystem, true},
		{IDExplosion, "explosion", CategoryCombat, true},
		{IDPrivateMessage, "privatemessage", CategoryUI, true},
		{IDPushAway, "pushaway", CategoryCombat, true},
		{IDLevelModTime, "levelmodtime", CategoryCore, true},
		{IDHurtPlayer, "hurtplayer", CategoryCombat, true},
		{IDStartMessage, "startmessage", CategorySystem, true},
		{IDNewWorldTime, "newworldtime", CategorySystem, false},
		{IDDefaultWeapon, "defaultweapon", CategoryCombat, false},
		{IDHasNpcServer, "hasnpcserver", CategorySystem, false},
		{IDFileUpToDate, "fileuptodate", CategoryFiles, true},
		{IDHitObjects, "hitobjects", CategoryCombat, true},
		{IDStaffGuilds, "staffguilds", CategorySystem, true},
		{IDTriggerAction, "triggeraction", CategorySystem, true},
		{IDPlayerWarp2, "gmapwarp", CategoryCore, true},
		{IDRawData, "rawdata", CategoryFiles, false},
		{IDBoardPacket, "boardpacket", CategoryFiles, false},
		{IDFile, "file", CategoryFiles, true},
		{IDGhostMode, "ghostmode", CategorySystem, false},
		{IDBigMap, "bigmap", CategoryUI, true},
		{IDMiniMap, "minimap", CategoryUI, true},
		{IDServerWarp, "serverwarp", CategoryCore, true},
		{IDMove2, "move2", CategoryMovement, true},
		{IDShoot2, "shoot2", CategoryCombat, true},
	}
	for _, p := range inbound {
		reg.Register(Descriptor{ID: p.id, Name: p.name, Direction: ServerToClient, Category: p.cat, Variable: p.vary})
	}

	outbound := []struct {
		id   byte
		name string
		cat  Category
	}{
		{IDOutLogin, "login", CategorySystem},
		{IDOutPlayerProps, "playerprops", CategoryCore},
		{IDOutPlayerWarp, "playerwarp", CategoryCore},
		{IDOutToAll, "toall", CategoryUI},
		{IDOutPrivateMessage, "privatemessage", CategoryUI},
		{IDOutBombAdd, "bombadd", CategoryCombat},
		{IDOutArrowAdd, "arrowadd", CategoryCombat},
		{IDOutFireSpy, "firespy", CategoryCombat},
		{IDOutWantFile, "wantfile", CategoryFiles},
		{IDOutFlagSet, "flagset", CategorySystem},
		{IDOutRequestUpdateBoard, "requestupdateboard", CategoryCore},
		{IDOutRequestText, "requesttext", CategorySystem},
		{IDOutSendText, "sendtext", CategorySystem},
	}
	for _, p := range outbound {
		reg.Register(Descriptor{ID: p.id, Name: p.name, Direction: ClientToServer, Category: p.cat})
	}

	return reg
}
