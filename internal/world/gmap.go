package world

import "github.com/hosler/pyreborn-go/internal/perr"

// GMap is a manifest composing a grid of level segments into one navigable
// world (spec §3, §4.6). The session treats a GMAP as a single logical
// level: its name is the current level name while active, with
// Player.GmapLevelX/Y carrying the active segment.
type GMap struct {
	Name          string
	Width, Height int

	// segments maps "col,row" to the child level's filename.
	segments map[[2]int]string
}

// NewGMap builds an empty manifest of the given grid size.
func NewGMap(name string, width, height int) *GMap {
	return &GMap{Name: name, Width: width, Height: height, segments: make(map[[2]int]string)}
}

// SetSegment records the child level name for (col, row).
func (g *GMap) SetSegment(col, row int, levelName string) {
	g.segments[[2]int{col, row}] = levelName
}

// Segment returns the child level name at (col, row).
func (g *GMap) Segment(col, row int) (string, bool) {
	name, ok := g.segments[[2]int{col, row}]
	return name, ok
}

// Complete reports whether every cell in the width x height grid has a
// registered child level name (spec §3 invariant).
func (g *GMap) Complete() bool {
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if _, ok := g.segments[[2]int{col, row}]; !ok {
				return false
			}
		}
	}
	return true
}

// Validate returns an error if the manifest is missing any declared cell.
func (g *GMap) Validate() error {
	if !g.Complete() {
		return perr.New(perr.BadPacket, "gmap manifest missing one or more declared segments")
	}
	return nil
}
