// Package serverlist implements the short directory-protocol client (spec
// §6, §4.11): dial, send a version packet and an authentication packet,
// read back the server descriptor list plus site/upgrade URLs, and close.
// Grounded on the teacher's internal/net/server.go accept-loop shape,
// inverted from "accept and hold open" to "dial, read once, close".
package serverlist

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/hosler/pyreborn-go/internal/perr"
)

// DefaultPort is the well-known server-list directory port (spec §6).
const DefaultPort = 14922

// Descriptor is one entry in the directory's server list.
type Descriptor struct {
	Name        string
	Type        string
	Language    string
	Description string
	URL         string
	Version     string
	PlayerCount int
	IP          string
	Port        int
}

// Response is the full directory reply.
type Response struct {
	Servers    []Descriptor
	SiteURL    string
	UpgradeURL string
}

// Client dials a server-list directory and fetches the current listing.
type Client struct {
	Host    string
	Port    int
	Account string
	Pass    string
	Version string
	Dial    time.Duration
}

// NewClient builds a Client targeting host on DefaultPort, with typical
// timeouts.
func NewClient(host, account, pass string) *Client {
	return &Client{
		Host:    host,
		Port:    DefaultPort,
		Account: account,
		Pass:    pass,
		Version: "GNW22122",
		Dial:    10 * time.Second,
	}
}

// FetchAndCache fetches the current listing and, on success, writes it to
// the default cache path so a later LoadKnownServers call can serve a
// listing without a live directory round-trip. A cache write failure is
// ignored: the fetched listing is returned either way and the cache error
// is not reported to the caller.
func (c *Client) FetchAndCache(ctx context.Context) (*Response, error) {
	resp, err := c.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if path, cacheErr := DefaultCachePath(); cacheErr == nil {
		_ = SaveCache(path, resp)
	}
	return resp, nil
}

// LoadKnownServers returns the last cached listing written by
// FetchAndCache, for offline use (e.g. populating a server picker before
// a directory round-trip completes).
func LoadKnownServers() ([]Descriptor, error) {
	path, err := DefaultCachePath()
	if err != nil {
		return nil, err
	}
	return LoadCache(path)
}

// Fetch dials, authenticates, reads the listing, and closes the
// connection.
func (c *Client) Fetch(ctx context.Context) (*Response, error) {
	dialCtx, cancel := context.WithTimeout(ctx, c.Dial)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", fmt.Sprintf("%s:%d", c.Host, c.Port))
	if err != nil {
		return nil, perr.Wrap(perr.Transport, "dial serverlist", err)
	}
	defer conn.Close()

	if _, err := fmt.Fprintf(conn, "%s\n", c.Version); err != nil {
		return nil, perr.Wrap(perr.Transport, "send version", err)
	}
	if _, err := fmt.Fprintf(conn, "%s\n%s\n", c.Account, c.Pass); err != nil {
		return nil, perr.Wrap(perr.Transport, "send auth", err)
	}

	resp := &Response{}
	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "SITE "):
			resp.SiteURL = strings.TrimPrefix(line, "SITE ")
		case strings.HasPrefix(line, "UPGRADE "):
			resp.UpgradeURL = strings.TrimPrefix(line, "UPGRADE ")
		default:
			d, err := parseDescriptorLine(line)
			if err != nil {
				continue
			}
			resp.Servers = append(resp.Servers, d)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(perr.Transport, "read serverlist", err)
	}
	return resp, nil
}

// parseDescriptorLine parses one comma-separated descriptor record:
// name,type,language,description,url,version,playercount,ip,port.
func parseDescriptorLine(line string) (Descriptor, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 9 {
		return Descriptor{}, perr.New(perr.BadPacket, "serverlist: malformed descriptor line")
	}
	count, _ := strconv.Atoi(fields[6])
	port, _ := strconv.Atoi(fields[8])
	return Descriptor{
		Name:        fields[0],
		Type:        fields[1],
		Language:    fields[2],
		Description: fields[3],
		URL:         fields[4],
		Version:     fields[5],
		PlayerCount: count,
		IP:          fields[7],
		Port:        port,
	}, nil
}
