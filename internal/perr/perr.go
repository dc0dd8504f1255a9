// Package perr implements the protocol-core error taxonomy (spec §7): a
// small set of named kinds, each carrying whether it is fatal to the
// session, wrapped with the usual fmt.Errorf("%w") chaining.
package perr

import "fmt"

// Kind classifies an error by how the session must react to it.
type Kind int

const (
	Transport Kind = iota
	BadFrame
	BadPacket
	UnknownPacket
	UnknownProperty
	ProtocolState
	AuthFailed
	Timeout
	FileTransferAborted
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "Transport"
	case BadFrame:
		return "BadFrame"
	case BadPacket:
		return "BadPacket"
	case UnknownPacket:
		return "UnknownPacket"
	case UnknownProperty:
		return "UnknownProperty"
	case ProtocolState:
		return "ProtocolState"
	case AuthFailed:
		return "AuthFailed"
	case Timeout:
		return "Timeout"
	case FileTransferAborted:
		return "FileTransferAborted"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Fatal reports whether an error of this kind must terminate the session
// (spec §7: BadFrame and Timeout are fatal; everything else is observed via
// events or returned to the caller and the session continues).
func (k Kind) Fatal() bool {
	switch k {
	case BadFrame, Timeout:
		return true
	default:
		return false
	}
}

// Error is the concrete error type returned across the public API boundary.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error with no wrapped cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap builds an *Error wrapping an existing cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}
