// Package pyreborn is a client library for the Graal Reborn game protocol
// (spec §1, §6): a single Client type wrapping the connection engine,
// session state machine, and world model, exposing the public surface a
// bot or tool author drives. Grounded on the teacher's exported facade
// style (cmd/l1jgo/main.go wires internal/net + internal/data + internal/
// persist behind a small number of top-level calls) but inverted from
// "boot a server" to "dial a server".
package pyreborn

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/hosler/pyreborn-go/internal/config"
	"github.com/hosler/pyreborn-go/internal/credential"
	"github.com/hosler/pyreborn-go/internal/event"
	"github.com/hosler/pyreborn-go/internal/filecache"
	"github.com/hosler/pyreborn-go/internal/logging"
	"github.com/hosler/pyreborn-go/internal/session"
	"github.com/hosler/pyreborn-go/internal/world"
)

// Re-exported event types (spec §4.10), so callers subscribe without
// importing the internal event package directly.
type (
	Connected        = event.Connected
	Disconnected     = event.Disconnected
	Authenticated    = event.Authenticated
	PlayerAdded      = event.PlayerAdded
	PlayerRemoved    = event.PlayerRemoved
	PlayerUpdated    = event.PlayerUpdated
	ChatMessage      = event.ChatMessage
	PrivateMessage   = event.PrivateMessage
	LevelEntered     = event.LevelEntered
	LevelBoardLoaded = event.LevelBoardLoaded
	ItemAdded        = event.ItemAdded
	ItemRemoved      = event.ItemRemoved
	TriggerAction    = event.TriggerAction
	Explosion        = event.Explosion
	Hurt             = event.Hurt
	UnknownPacket    = event.UnknownPacket
	UnknownProperty  = event.UnknownProperty
)

// Re-exported world model types, for callers inspecting state returned by
// the getters below without importing internal/world.
type (
	Player = world.Player
	Level  = world.Level
	NPC    = world.NPC
	Item   = world.Item
	GMap   = world.GMap
)

// Subscription identifies a live event subscription, returned by Subscribe
// for later use with Unsubscribe.
type Subscription = event.Handle

// Client is the library's single entry point: one Client per game
// connection (spec §4.7, §4.8).
type Client struct {
	cfg  *config.Config
	log  *zap.Logger
	bus  *event.Bus
	sess *session.Session

	creds *credential.Store
	files *filecache.Cache
}

// Option configures a Client at construction time.
type Option func(*clientOptions)

type clientOptions struct {
	configPath string
	cfg        *config.Config
}

// WithConfigFile loads configuration from a TOML file (or PYREBORN_CONFIG
// if set) instead of using built-in defaults.
func WithConfigFile(path string) Option {
	return func(o *clientOptions) { o.configPath = path }
}

// WithConfig supplies an already-constructed configuration, taking
// precedence over WithConfigFile.
func WithConfig(cfg *config.Config) Option {
	return func(o *clientOptions) { o.cfg = cfg }
}

// New builds a Client ready to Connect. Host/port/account fields of the
// resolved configuration may be overridden afterward via Connect's
// parameters.
func New(opts ...Option) (*Client, error) {
	var o clientOptions
	for _, fn := range opts {
		fn(&o)
	}

	cfg := o.cfg
	if cfg == nil && o.configPath != "" {
		loaded, err := config.LoadFromEnvOrPath(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("pyreborn: load config: %w", err)
		}
		cfg = loaded
	}
	return newClient(cfg, &o)
}

func newClient(cfg *config.Config, o *clientOptions) (*Client, error) {
	if cfg == nil {
		cfg = defaultConfig()
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("pyreborn: build logger: %w", err)
	}

	credDir := filepath.Join(expandHome(cfg.Cache.FileCacheDir), "..", "credentials")
	creds, err := credential.NewStore(credDir)
	if err != nil {
		return nil, fmt.Errorf("pyreborn: build credential store: %w", err)
	}

	files, err := filecache.New(expandHome(cfg.Cache.FileCacheDir), log)
	if err != nil {
		return nil, fmt.Errorf("pyreborn: build file cache: %w", err)
	}

	bus := event.NewBus()
	return &Client{
		cfg:   cfg,
		log:   log,
		bus:   bus,
		sess:  session.New(cfg, log, bus),
		creds: creds,
		files: files,
	}, nil
}

func defaultConfig() *config.Config {
	return config.Defaults()
}

func expandHome(p string) string {
	if len(p) >= 2 && p[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// Connect dials host:port and logs in as account/password. It returns once
// the login packet has been sent; wait for an Authenticated event (or poll
// State) to know the handshake has completed (spec §4.8).
func (c *Client) Connect(ctx context.Context, host string, port int, account, password string) error {
	if host != "" {
		c.cfg.Connection.Host = host
	}
	if port != 0 {
		c.cfg.Connection.Port = port
	}
	c.cfg.Connection.Account = account
	return c.sess.Connect(ctx, account, password)
}

// Disconnect closes the connection, if any, and blocks until both I/O
// tasks have stopped. Safe to call multiple times.
func (c *Client) Disconnect(reason string) {
	c.sess.Disconnect(reason)
}

// State returns the session's current lifecycle state as a string
// ("Disconnected", "Connecting", "Handshaking", "Authenticated").
func (c *Client) State() string {
	return c.sess.State().String()
}

// Subscribe registers fn to run, synchronously on the receive task, for
// every event of type T (spec §4.10). Use pyreborn.Connected,
// pyreborn.ChatMessage, etc. as T.
func Subscribe[T any](c *Client, fn func(T)) Subscription {
	return event.Subscribe(c.bus, fn)
}

// Unsubscribe removes a subscription previously returned by Subscribe.
func (c *Client) Unsubscribe(sub Subscription) {
	c.bus.Unsubscribe(sub)
}

// LocalPlayer returns the client's own player state.
func (c *Client) LocalPlayer() *Player {
	return c.sess.World().Local
}

// PlayerByID returns a known player (local or remote) by id, or nil.
func (c *Client) PlayerByID(id int) *Player {
	return c.sess.World().PlayerByID(id)
}

// PlayersOnLevel returns every known player currently on the named level.
func (c *Client) PlayersOnLevel(name string) []*Player {
	return c.sess.World().PlayersOnLevel(name)
}

// CurrentLevel returns the name of the level the local player currently
// occupies.
func (c *Client) CurrentLevel() string {
	return c.sess.CurrentLevel()
}

// Level returns the cached level by name, if present (spec §3, §4.9).
func (c *Client) Level(name string) (*Level, bool) {
	return c.sess.World().Level(name)
}

// MoveTo, SetNickname, SetChat, Say, PrivateMessage, SetHeadImage,
// SetBodyImage, SetShieldImage, SetSwordImage, SetColors, DropBomb,
// ShootArrow, FireEffect, WarpTo, WantFile, RequestUpdateBoard, SetFlag,
// and TriggerAction forward directly to the session's outbound actions
// (spec §6); each requires the session to be Authenticated.

func (c *Client) MoveTo(x, y float64, direction int) error { return c.sess.MoveTo(x, y, direction) }
func (c *Client) SetNickname(nick string) error            { return c.sess.SetNickname(nick) }
func (c *Client) SetChat(text string) error                { return c.sess.SetChat(text) }
func (c *Client) Say(text string) error                    { return c.sess.Say(text) }
func (c *Client) PrivateMessage(playerID int, text string) error {
	return c.sess.PrivateMessage(playerID, text)
}
func (c *Client) SetHeadImage(name string) error   { return c.sess.SetHeadImage(name) }
func (c *Client) SetBodyImage(name string) error   { return c.sess.SetBodyImage(name) }
func (c *Client) SetShieldImage(name string) error { return c.sess.SetShieldImage(name) }
func (c *Client) SetSwordImage(name string) error  { return c.sess.SetSwordImage(name) }
func (c *Client) SetColors(colors [5]byte) error   { return c.sess.SetColors(colors) }
func (c *Client) DropBomb(power int) error         { return c.sess.DropBomb(power) }
func (c *Client) ShootArrow() error                { return c.sess.ShootArrow() }
func (c *Client) FireEffect() error                { return c.sess.FireEffect() }
func (c *Client) WarpTo(x, y float64, levelName string) error {
	return c.sess.WarpTo(x, y, levelName)
}
func (c *Client) WantFile(name string) error { return c.sess.WantFile(name) }
func (c *Client) RequestUpdateBoard(levelName string, x, y, w, h int) error {
	return c.sess.RequestUpdateBoard(levelName, x, y, w, h)
}
func (c *Client) SetFlag(name, value string) error { return c.sess.SetFlag(name, value) }
func (c *Client) TriggerAction(name string, args []string) error {
	return c.sess.TriggerAction(name, args)
}

// RememberPassword hashes and caches password for account on disk, so a
// later SavedPasswordMatches check can verify a re-entered password without
// prompting again (spec §4.11 supplement, grounded on the teacher's
// AccountRepo pattern).
func (c *Client) RememberPassword(account, password string) error {
	return c.creds.Save(account, password)
}

// SavedPasswordMatches reports whether password matches the cached entry
// for account, if any.
func (c *Client) SavedPasswordMatches(account, password string) (bool, error) {
	return c.creds.Verify(account, password)
}

// ForgetPassword deletes any cached credential entry for account.
func (c *Client) ForgetPassword(account string) error {
	return c.creds.Forget(account)
}
