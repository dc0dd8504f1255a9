//go:build unix

package session

import (
	"net"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// tuneSocket disables Nagle's algorithm on conn. Graal's frames are small
// and latency-sensitive (spec §5: the send task's only suspension points
// are queue pop and rate-limit sleep, never socket buffering), so batching
// writes to fill a TCP segment costs more than it saves.
func tuneSocket(conn net.Conn, log *zap.Logger) {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}
	rawConn, err := tcpConn.SyscallConn()
	if err != nil {
		log.Debug("sockopt: get raw conn failed", zap.Error(err))
		return
	}
	ctrlErr := rawConn.Control(func(fd uintptr) {
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); err != nil {
			log.Debug("sockopt: TCP_NODELAY failed", zap.Error(err))
		}
	})
	if ctrlErr != nil {
		log.Debug("sockopt: control failed", zap.Error(ctrlErr))
	}
}
