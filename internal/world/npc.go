package world

import "sync/atomic"

// npcIDCounter generates unique NPC object IDs for NPCs the core creates
// itself (e.g. placeholder instances before a real id arrives).
var npcIDCounter atomic.Int32

// NextNpcID returns a unique object ID for a locally-created NPC instance.
func NextNpcID() int32 {
	return npcIDCounter.Add(1)
}

// NPC is one non-player actor in a level: id, position, appearance, and
// opaque script/attribute state (spec §3 — "script fragments, opaque to
// the core").
type NPC struct {
	ID    int32
	X, Y  float64
	Image string

	// Script holds the NPC's server-authored behavior script verbatim.
	// The core never parses or executes it (spec §1 Non-goals: NPC script
	// execution).
	Script string

	Save    [10]string
	GAttrib [30]string

	Visible  bool
	Blocking bool
}
