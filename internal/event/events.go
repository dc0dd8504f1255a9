package event

// Connected is emitted once the transport connection succeeds, before
// login is sent (spec §4.10).
type Connected struct{}

// Disconnected is emitted when the session transitions to Disconnected,
// carrying the reason the teacher's own shutdown paths use (a kind label
// plus the underlying message).
type Disconnected struct {
	Reason string
}

// Authenticated is emitted once the server accepts login and the session
// enters the Authenticated state.
type Authenticated struct{}

// PlayerAdded is emitted the first time a remote player is observed.
type PlayerAdded struct{ ID int }

// PlayerRemoved identifies a remote player that left the current level or
// disconnected. The session does not emit it: no packet it handles removes
// a remote player from the world model.
type PlayerRemoved struct{ ID int }

// PlayerUpdated is emitted whenever a property-stream packet mutates a
// player already known to the world model.
type PlayerUpdated struct{ ID int }

// ChatMessage is a player's visible chat bubble text.
type ChatMessage struct {
	ID   int
	Text string
}

// PrivateMessage is a direct, non-bubble message from another player.
type PrivateMessage struct {
	From int
	Text string
}

// LevelEntered is emitted when the local player's current level changes.
type LevelEntered struct{ Name string }

// LevelBoardLoaded is emitted once a raw 8192-byte board block has been
// decoded into the current level. Parsing a .nw file with board.ParseLevel
// does not emit it.
type LevelBoardLoaded struct{ Name string }

// ItemAdded is emitted when an item appears in the current level.
type ItemAdded struct {
	X, Y int
	Kind string
}

// ItemRemoved is emitted when an item disappears from the current level.
type ItemRemoved struct {
	X, Y int
}

// TriggerAction is a server- or NPC-originated named action with opaque
// arguments (spec §4.10).
type TriggerAction struct {
	Name string
	Args []string
}

// Explosion is a bomb or other area-effect detonation.
type Explosion struct {
	X, Y  float64
	Power int
}

// Hurt is emitted when a player takes damage.
type Hurt struct {
	Target int
	Damage int
}

// UnknownPacket is emitted for any packet id not present in the registry,
// carrying its id and raw body so a caller can still observe it (spec §7).
type UnknownPacket struct {
	ID   byte
	Body []byte
}

// UnknownProperty describes a property id the property codec could not
// interpret at all. The session does not emit it: property.Decode stops at
// such an id and drops the rest of that stream, and dispatch returns the
// perr.UnknownProperty error, which the receive loop logs before going on
// with the next packet.
type UnknownProperty struct {
	PlayerID int
	PropID   byte
}
