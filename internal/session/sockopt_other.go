//go:build !unix

package session

import (
	"net"

	"go.uber.org/zap"
)

// tuneSocket is a no-op on non-Unix platforms; golang.org/x/sys/unix has no
// equivalent there.
func tuneSocket(conn net.Conn, log *zap.Logger) {}
