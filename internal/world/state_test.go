package world

import "testing"

func TestUpsertRemoteCreatesOnce(t *testing.T) {
	s := NewState(0)
	p1, created := s.UpsertRemote(5)
	if !created {
		t.Fatal("expected first UpsertRemote to create the player")
	}
	p2, created := s.UpsertRemote(5)
	if created {
		t.Fatal("expected second UpsertRemote to find the existing player")
	}
	if p1 != p2 {
		t.Fatal("expected the same *Player instance back")
	}
}

func TestPlayersOnLevel(t *testing.T) {
	s := NewState(0)
	s.Local.CurLevel = "onlinestartlocal.nw"
	remote, _ := s.UpsertRemote(1)
	remote.CurLevel = "onlinestartlocal.nw"
	other, _ := s.UpsertRemote(2)
	other.CurLevel = "elsewhere.nw"

	players := s.PlayersOnLevel("onlinestartlocal.nw")
	if len(players) != 2 {
		t.Fatalf("got %d players, want 2", len(players))
	}
}

func TestLevelCacheEviction(t *testing.T) {
	c := NewLevelCache(2)
	c.Put("a.nw", NewLevel("a.nw"))
	c.Put("b.nw", NewLevel("b.nw"))
	c.Put("c.nw", NewLevel("c.nw")) // evicts a.nw, the least recently used

	if _, ok := c.Get("a.nw"); ok {
		t.Fatal("a.nw should have been evicted")
	}
	if _, ok := c.Get("c.nw"); !ok {
		t.Fatal("c.nw should still be cached")
	}
}

func TestModifyBoardRejectsMismatchedCount(t *testing.T) {
	lvl := NewLevel("test.nw")
	if err := lvl.ModifyBoard(0, 0, 2, 2, []uint16{1, 2, 3}); err == nil {
		t.Fatal("expected error for tile count mismatch")
	}
}
