package world

import (
	"container/list"
	"sync"

	"github.com/hosler/pyreborn-go/internal/perr"
)

// TileCount is the fixed cell count of a level's board (spec §3 invariant:
// "tile array length is exactly 4096").
const TileCount = 64 * 64

// Sign is a readable, non-interactive text marker on a level tile.
type Sign struct {
	X, Y int
	Text string
}

// Link is a rectangular warp trigger to another level.
type Link struct {
	X, Y, W, H   int
	DestLevel    string
	DestX, DestY float64
}

// Chest is a one-time-openable container tied to a sign.
type Chest struct {
	X, Y int
	Item string
	Sign string
}

// Level is a single 64x64 board plus its static content (spec §3).
type Level struct {
	Name string

	Tiles [TileCount]uint16

	Signs  []Sign
	Links  []Link
	Chests []Chest
	NPCs   []*NPC
	Items  []*Item
}

// NewLevel constructs an empty level named name.
func NewLevel(name string) *Level {
	return &Level{Name: name}
}

// SetTiles installs a freshly decoded 4096-tile board, normalizing every
// id modulo 1024 per spec §3's invariant.
func (l *Level) SetTiles(tiles [TileCount]uint16) {
	for i, v := range tiles {
		l.Tiles[i] = v % 1024
	}
}

// ModifyBoard applies a board-modify patch: a w x h rectangle of tile ids
// starting at (x,y), row-major.
func (l *Level) ModifyBoard(x, y, w, h int, tiles []uint16) error {
	if len(tiles) != w*h {
		return perr.New(perr.BadPacket, "board-modify tile count does not match w*h")
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			tx, ty := x+col, y+row
			if tx < 0 || tx >= 64 || ty < 0 || ty >= 64 {
				continue
			}
			l.Tiles[ty*64+tx] = tiles[row*w+col] % 1024
		}
	}
	return nil
}

// LevelCache is an LRU-bounded cache of levels by name (spec §3: "retained
// in an LRU-style cache", spec §4.9 default bound 32).
type LevelCache struct {
	mu    sync.Mutex
	bound int
	ll    *list.List
	index map[string]*list.Element
}

type levelCacheEntry struct {
	name  string
	level *Level
}

// DefaultLevelCacheBound is the default maximum number of cached levels.
const DefaultLevelCacheBound = 32

// NewLevelCache builds a cache bounded to bound entries. bound <= 0 uses
// DefaultLevelCacheBound.
func NewLevelCache(bound int) *LevelCache {
	if bound <= 0 {
		bound = DefaultLevelCacheBound
	}
	return &LevelCache{
		bound: bound,
		ll:    list.New(),
		index: make(map[string]*list.Element),
	}
}

// Get returns the cached level for name, promoting it to most-recently-used.
func (c *LevelCache) Get(name string) (*Level, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.index[name]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*levelCacheEntry).level, true
}

// Put inserts or replaces the cached level for name, evicting the least
// recently used entry if the cache is at its bound.
func (c *LevelCache) Put(name string, lvl *Level) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.index[name]; ok {
		el.Value.(*levelCacheEntry).level = lvl
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&levelCacheEntry{name: name, level: lvl})
	c.index[name] = el
	for c.ll.Len() > c.bound {
		oldest := c.ll.Back()
		if oldest == nil {
			break
		}
		c.ll.Remove(oldest)
		delete(c.index, oldest.Value.(*levelCacheEntry).name)
	}
}

// Len reports the number of cached levels.
func (c *LevelCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
