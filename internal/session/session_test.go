package session

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hosler/pyreborn-go/internal/config"
	"github.com/hosler/pyreborn-go/internal/event"
	"github.com/hosler/pyreborn-go/internal/perr"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.Defaults()
	cfg.Connection.Version = "GNW03014"
	return New(cfg, zap.NewNop(), event.NewBus())
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Disconnected:  "Disconnected",
		Connecting:    "Connecting",
		Handshaking:   "Handshaking",
		Authenticated: "Authenticated",
	}
	for st, want := range cases {
		if got := st.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", st, got, want)
		}
	}
}

func TestSendLoginWorkedExample(t *testing.T) {
	// spec §8 scenario 2: id 0x22, client type 0x57, key+32 = 0x62,
	// "GNW03014\n", "myuser\n", "mypass\n", then the identity tag.
	s := testSession(t)
	if err := s.sendLogin(0x42, "myuser", "mypass"); err != nil {
		t.Fatalf("sendLogin: %v", err)
	}

	pkt := <-s.sendQueue
	want := []byte{0x22, 0x57, 0x62}
	want = append(want, []byte("GNW03014\nmyuser\nmypass\n"+identityTag+"\n")...)
	if string(pkt) != string(want) {
		t.Fatalf("login packet = %#v, want %#v", pkt, want)
	}
}

func TestRequireAuthenticatedGatesActions(t *testing.T) {
	s := testSession(t)
	if err := s.MoveTo(1, 1, 0); err == nil {
		t.Fatal("expected MoveTo to fail before authentication")
	}
	var pe *perr.Error
	if err := s.Say("hi"); err == nil {
		t.Fatal("expected Say to fail before authentication")
	} else if ok := asPerr(err, &pe); !ok || pe.Kind != perr.ProtocolState {
		t.Fatalf("expected ProtocolState error, got %v", err)
	}
}

func asPerr(err error, out **perr.Error) bool {
	pe, ok := err.(*perr.Error)
	if ok {
		*out = pe
	}
	return ok
}

func TestWorldStartsWithFreshLocalPlayer(t *testing.T) {
	s := testSession(t)
	if s.World().Local == nil {
		t.Fatal("expected a non-nil local player on a fresh session")
	}
}

func TestMoveToCrossesGmapSegmentEast(t *testing.T) {
	// spec §8 scenario 4: segment (1,1) at local (63.5, 30.0), moving east
	// by 1 tile lands on segment (2,1) with local x 0.5.
	s := testSession(t)
	s.setState(Authenticated)
	gx, gy := 1, 1
	s.world.Local.GmapLevelX, s.world.Local.GmapLevelY = &gx, &gy
	s.world.Local.SetLocalXY(63.5, 30.0)

	if err := s.MoveTo(64.5, 30.0, 0); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}

	if *s.world.Local.GmapLevelX != 2 {
		t.Fatalf("GmapLevelX = %d, want 2", *s.world.Local.GmapLevelX)
	}
	if s.world.Local.X != 0.5 {
		t.Fatalf("X = %v, want 0.5", s.world.Local.X)
	}
}

func TestMoveToLeavesSegmentUntouchedWithoutGmap(t *testing.T) {
	s := testSession(t)
	s.setState(Authenticated)
	if err := s.MoveTo(70, 30, 0); err != nil {
		t.Fatalf("MoveTo: %v", err)
	}
	if s.world.Local.GmapLevelX != nil {
		t.Fatal("expected GmapLevelX to stay unset outside gmap mode")
	}
}

func TestHeartbeatTimeoutDisconnectsSession(t *testing.T) {
	// spec §8 scenario 6: heartbeat silence beyond the bound must both
	// return a fatal error from the loop and transition the session to
	// Disconnected, not just the former.
	s := testSession(t)
	s.setState(Authenticated)
	s.cfg.Timeouts.Heartbeat = 0
	s.lastHeartbeat.Store(time.Now().Add(-time.Hour).UnixNano())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.heartbeatLoop(ctx); err == nil {
		t.Fatal("expected heartbeatLoop to return a fatal error")
	}

	deadline := time.Now().Add(time.Second)
	for s.State() != Disconnected && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.State() != Disconnected {
		t.Fatal("expected the session to reach Disconnected after heartbeat timeout")
	}
	if err := s.MoveTo(1, 1, 0); err == nil {
		t.Fatal("expected actions to be rejected after a timeout disconnect")
	}
}
