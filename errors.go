package groundlink

import "github.com/pkg/errors"

var (
	// ErrShortPacket is returned when a buffer is too small to hold the
	// frame it claims to be.
	ErrShortPacket = errors.New("groundlink: short packet")

	// ErrBadSync is returned when a frame's sync byte(s) do not match.
	ErrBadSync = errors.New("groundlink: bad sync pattern")

	// ErrBadCRC is returned when a frame's checksum does not match its
	// payload.
	ErrBadCRC = errors.New("groundlink: CRC mismatch")

	// ErrTooManyErasures is returned by the RS codec when a codeword has
	// more missing positions than it carries parity symbols.
	ErrTooManyErasures = errors.New("groundlink: erasures exceed parity")

	// ErrNoCodec is returned when a (gSize, m) pair cannot be built into
	// a Reed-Solomon codec (out of GF(2^8) range).
	ErrNoCodec = errors.New("groundlink: invalid codec parameters")

	// ErrEmptySession is returned by operations that require at least
	// one accepted packet before they are meaningful.
	ErrEmptySession = errors.New("groundlink: session has no packets")
)
