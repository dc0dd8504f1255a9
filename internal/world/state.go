package world

import "sync"

// State is the session's full in-memory world model: the local player,
// every remote player currently known, the level cache, and any
// in-progress file transfers (spec §4.9). It is mutated only by the
// session's receive task; everything else sees read-only snapshots.
type State struct {
	mu sync.RWMutex

	Local         *Player
	Remote        map[int]*Player
	Levels        *LevelCache
	Transfers     *Transfers
	CurrentLevel  string
	CurrentGMap   *GMap
}

// NewState builds an empty world model with the given level cache bound.
func NewState(levelCacheBound int) *State {
	return &State{
		Local:     &Player{},
		Remote:    make(map[int]*Player),
		Levels:    NewLevelCache(levelCacheBound),
		Transfers: NewTransfers(),
	}
}

// UpsertRemote returns the remote player for id, creating it if this is
// the first observation (spec §4.9: "created by otherplprops/addplayer").
// The second return value is true when the player was just created.
func (s *State) UpsertRemote(id int) (*Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Remote[id]; ok {
		return p, false
	}
	p := &Player{ID: id}
	s.Remote[id] = p
	return p, true
}

// RemoveRemote deletes a remote player, reporting whether it existed.
func (s *State) RemoveRemote(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Remote[id]; !ok {
		return false
	}
	delete(s.Remote, id)
	return true
}

// PlayerByID returns the local player if id matches it, else a known
// remote player, else nil.
func (s *State) PlayerByID(id int) *Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Local.ID == id {
		return s.Local
	}
	return s.Remote[id]
}

// PlayersOnLevel returns every known player (local included) currently on
// level name.
func (s *State) PlayersOnLevel(name string) []*Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Player
	if s.Local.CurLevel == name {
		out = append(out, s.Local)
	}
	for _, p := range s.Remote {
		if p.CurLevel == name {
			out = append(out, p)
		}
	}
	return out
}

// SetCurrentLevel updates the tracked current level name.
func (s *State) SetCurrentLevel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentLevel = name
	s.Local.CurLevel = name
}

// Level returns the cached level by name, if present.
func (s *State) Level(name string) (*Level, bool) {
	return s.Levels.Get(name)
}
