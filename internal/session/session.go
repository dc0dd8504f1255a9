// Package session implements the connection engine and session state
// machine (spec §4.7, §4.8, §5): a receive task and a send task cooperating
// over a dialed TCP socket, each owning one direction's cipher, coordinated
// with an errgroup.Group the way the teacher coordinates its own
// reader/writer goroutine pair but with first-error cancellation instead of
// a bare sync.WaitGroup.
package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hosler/pyreborn-go/internal/cipher"
	"github.com/hosler/pyreborn-go/internal/config"
	"github.com/hosler/pyreborn-go/internal/event"
	"github.com/hosler/pyreborn-go/internal/packet"
	"github.com/hosler/pyreborn-go/internal/perr"
	"github.com/hosler/pyreborn-go/internal/wire"
	"github.com/hosler/pyreborn-go/internal/world"
)

// clientType is the byte identifying this implementation to the server,
// sent raw (no +32 offset) immediately after the login id in the login
// packet (spec §8 scenario 2's worked example uses 0x57 for this slot).
const clientType = 0x57

// identityTag is this client's default reported platform/client identity
// string, the login packet's final field before its trailing newline.
const identityTag = "PC,,,,,PyReborn-Go"

// Session owns one connection's socket, both cipher directions, the send
// queue, and the world model's writer side (spec §4.7).
type Session struct {
	cfg *config.Config
	log *zap.Logger
	bus *event.Bus

	conn net.Conn

	sendCipher *cipher.Cipher
	recvCipher *cipher.Cipher

	state atomic.Int32

	sendQueue chan []byte

	world *world.State

	lastHeartbeat atomic.Int64 // unix nanos

	pendingRaw int // bytes of the next frame to treat as a raw board block

	closeOnce sync.Once
	cancel    context.CancelFunc
	group     *errgroup.Group

	taskErrMu sync.Mutex
	taskErrs  []error

	disconnectReason atomic.Value // string
}

// New builds a Session in the Disconnected state. cfg and log must not be
// nil; bus may be a fresh event.NewBus().
func New(cfg *config.Config, log *zap.Logger, bus *event.Bus) *Session {
	s := &Session{
		cfg:       cfg,
		log:       log,
		bus:       bus,
		sendQueue: make(chan []byte, cfg.RateLimit.SendQueueSize),
		world:     world.NewState(cfg.Cache.LevelCacheBound),
	}
	s.state.Store(int32(Disconnected))
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

func (s *Session) setState(st State) {
	s.state.Store(int32(st))
}

// World returns the session's world model for read-only inspection.
func (s *Session) World() *world.State { return s.world }

// DisconnectReason returns the reason passed to Disconnect, if any.
func (s *Session) DisconnectReason() string {
	v, _ := s.disconnectReason.Load().(string)
	return v
}

// Connect dials host:port, performs the ENCRYPT_GEN_5 handshake, and sends
// the login packet (spec §4.8). It returns once the login packet has been
// queued; Authenticated is reached asynchronously on receipt of
// `signature`, observable via the Authenticated event or by polling State.
func (s *Session) Connect(ctx context.Context, account, password string) error {
	if s.State() != Disconnected {
		return perr.New(perr.ProtocolState, "Connect called outside Disconnected state")
	}
	s.setState(Connecting)

	dialCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeouts.Dial)
	defer cancel()
	var d net.Dialer
	addr := fmt.Sprintf("%s:%d", s.cfg.Connection.Host, s.cfg.Connection.Port)
	conn, err := d.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		s.setState(Disconnected)
		return perr.Wrap(perr.Transport, "dial", err)
	}
	tuneSocket(conn, s.log)
	s.conn = conn

	key, err := randomKey()
	if err != nil {
		conn.Close()
		s.setState(Disconnected)
		return perr.Wrap(perr.Transport, "generate cipher key", err)
	}
	s.sendCipher = cipher.New(key)
	s.recvCipher = cipher.New(key)

	s.setState(Handshaking)
	event.Emit(s.bus, event.Connected{})

	runCtx, cancelRun := context.WithCancel(context.Background())
	s.cancel = cancelRun
	g, gctx := errgroup.WithContext(runCtx)
	s.group = g
	g.Go(func() error {
		err := s.receiveLoop(gctx)
		s.recordTaskErr(err)
		return err
	})
	g.Go(func() error {
		err := s.sendLoop(gctx)
		s.recordTaskErr(err)
		return err
	})
	g.Go(func() error {
		err := s.heartbeatLoop(gctx)
		s.recordTaskErr(err)
		return err
	})

	if err := s.sendLogin(key, account, password); err != nil {
		s.Disconnect("login send failure")
		return err
	}
	return nil
}

func randomKey() (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(256))
	if err != nil {
		return 0, err
	}
	return byte(n.Int64()), nil
}

// sendLogin builds and queues the login packet exactly per spec §8
// scenario 2: id, client type, key+32, version\n, account\n, password\n,
// identity\n.
func (s *Session) sendLogin(key byte, account, password string) error {
	w := packet.NewWriter(packet.IDOutLogin)
	w.WriteRawByte(clientType)
	w.WriteByte(key)
	w.WriteBytes([]byte(s.cfg.Connection.Version + "\n"))
	w.WriteBytes([]byte(account + "\n"))
	w.WriteBytes([]byte(password + "\n"))
	w.WriteBytes([]byte(identityTag + "\n"))
	return s.enqueue(w.Bytes())
}

// enqueue places an already +32-encoded logical packet on the send queue.
func (s *Session) enqueue(pkt []byte) error {
	select {
	case s.sendQueue <- pkt:
		return nil
	default:
		return perr.New(perr.Transport, "send queue full")
	}
}

// Disconnect signals both tasks to stop and transitions to Disconnected.
// Idempotent (spec §5: "multiple disconnect() calls are safe").
func (s *Session) Disconnect(reason string) {
	s.closeOnce.Do(func() {
		s.disconnectReason.Store(reason)
		if s.cancel != nil {
			s.cancel()
		}
		if s.conn != nil {
			s.conn.Close()
		}
		if s.group != nil {
			_ = s.group.Wait() // already reflected in taskErrs below
		}
		if err := multierr.Combine(s.taskErrs...); err != nil {
			s.log.Warn("session tasks reported errors on shutdown", zap.Error(err))
		}
		s.setState(Disconnected)
		event.Emit(s.bus, event.Disconnected{Reason: reason})
	})
}

// recordTaskErr appends a non-nil I/O task error to the list combined and
// logged by Disconnect (spec §5: the receive and send tasks may each fail
// independently; both causes should be visible, not just the first).
func (s *Session) recordTaskErr(err error) {
	if err == nil {
		return
	}
	s.taskErrMu.Lock()
	s.taskErrs = append(s.taskErrs, err)
	s.taskErrMu.Unlock()
}

// receiveLoop reads frames from the socket, decrypts/decompresses them,
// and dispatches each logical packet inline (spec §4.7: "never blocks on
// application callbacks").
func (s *Session) receiveLoop(ctx context.Context) error {
	defer s.signalFatal("receive task ended")
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		s.conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
		payload, err := wire.ReadFrame(s.conn, s.recvCipher)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			fatal := perr.Wrap(perr.BadFrame, "receive loop", err)
			s.disconnectAsync(fatal)
			return fatal
		}

		if s.pendingRaw > 0 {
			if err := s.handleRawBoard(payload); err != nil {
				s.log.Warn("raw board decode failed", zap.Error(err))
			}
			s.pendingRaw = 0
			continue
		}

		for _, raw := range wire.SplitBatch(payload) {
			if err := s.dispatch(raw); err != nil {
				if pe, ok := err.(*perr.Error); ok && pe.Kind.Fatal() {
					s.disconnectAsync(err)
					return err
				}
				s.log.Warn("packet dispatch error", zap.Error(err))
			}
		}
	}
}

// sendLoop drains the send queue with a floor of RateLimit.MinFrameInterval
// between frames (spec §4.7, §8: "no two frames emitted within 50ms").
func (s *Session) sendLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case pkt := <-s.sendQueue:
			if err := wire.WriteFrame(s.conn, s.sendCipher, pkt); err != nil {
				return perr.Wrap(perr.Transport, "send loop", err)
			}
			pause := time.NewTimer(s.cfg.RateLimit.MinFrameInterval)
			select {
			case <-pause.C:
			case <-ctx.Done():
				pause.Stop()
				return nil
			}
		}
	}
}

// heartbeatLoop watches for newworldtime arrivals and disconnects with
// Timeout if the server falls silent (spec §4.7, §8 scenario 6).
func (s *Session) heartbeatLoop(ctx context.Context) error {
	s.lastHeartbeat.Store(time.Now().UnixNano())
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			last := time.Unix(0, s.lastHeartbeat.Load())
			if time.Since(last) > s.cfg.Timeouts.Heartbeat {
				fatal := perr.New(perr.Timeout, "heartbeat silence exceeded bound")
				s.disconnectAsync(fatal)
				return fatal
			}
		}
	}
}

func (s *Session) signalFatal(msg string) {
	s.log.Debug(msg)
}

// disconnectAsync disconnects the session in its own goroutine, the same
// way dispatch's discmessage handler does, so a loop can signal the fatal
// cause without deadlocking on its own shutdown wait (spec §7: a fatal
// error "must terminate the session" — state, not just the return value).
func (s *Session) disconnectAsync(cause error) {
	go s.Disconnect(cause.Error())
}
