// Package transport is the thin TCP collaborator the core hands raw
// bytes to and takes raw bytes from. It carries no FEC/TELEM protocol
// logic of its own; that all lives in the root groundlink package. A
// Link is a plain TCP byte pipe multiplexed with smux, offering the same
// Dial/Listen shape as a direct net.Conn.
package transport

import (
	"net"
	"time"

	"github.com/pkg/errors"
	"github.com/xtaci/smux"
)

// Link is a duplex byte pipe carrying one image session's interleaved
// FEC/TELEM stream. It implements io.ReadWriter so it can be fed
// directly into groundlink.StreamParser.Feed and written to with
// groundlink.Packet.Bytes() / groundlink.BuildTelem(...).
type Link struct {
	stream *smux.Stream
	sess   *smux.Session
}

// Read implements io.Reader.
func (l *Link) Read(b []byte) (int, error) {
	return l.stream.Read(b)
}

// Write implements io.Writer.
func (l *Link) Write(b []byte) (int, error) {
	return l.stream.Write(b)
}

// Close closes the stream and its underlying smux session.
func (l *Link) Close() error {
	if err := l.stream.Close(); err != nil {
		return err
	}
	return l.sess.Close()
}

// LocalAddr and RemoteAddr expose the underlying session's endpoints.
func (l *Link) LocalAddr() net.Addr  { return l.sess.LocalAddr() }
func (l *Link) RemoteAddr() net.Addr { return l.sess.RemoteAddr() }

// SetDeadline, SetReadDeadline, SetWriteDeadline forward to the stream.
func (l *Link) SetDeadline(t time.Time) error      { return l.stream.SetDeadline(t) }
func (l *Link) SetReadDeadline(t time.Time) error  { return l.stream.SetReadDeadline(t) }
func (l *Link) SetWriteDeadline(t time.Time) error { return l.stream.SetWriteDeadline(t) }

// Dial opens a TCP connection to addr and opens one smux stream over it
// to carry the link byte stream.
func Dial(addr string) (*Link, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "dial tcp")
	}

	sess, err := smux.Client(conn, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open smux client session")
	}

	stream, err := sess.OpenStream()
	if err != nil {
		return nil, errors.Wrap(err, "open smux stream")
	}

	return &Link{stream: stream, sess: sess}, nil
}

// Listener accepts TCP connections and hands back a *Link per accepted
// smux stream.
type Listener struct {
	listener net.Listener
}

// Listen binds addr and returns a Listener.
func Listen(addr string) (*Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "listen tcp")
	}
	return &Listener{listener: ln}, nil
}

// Accept blocks for the next incoming connection, opens an smux server
// session on it, and accepts that session's first stream as the link.
func (l *Listener) Accept() (*Link, error) {
	conn, err := l.listener.Accept()
	if err != nil {
		return nil, errors.Wrap(err, "accept tcp")
	}

	sess, err := smux.Server(conn, nil)
	if err != nil {
		return nil, errors.Wrap(err, "open smux server session")
	}

	stream, err := sess.AcceptStream()
	if err != nil {
		return nil, errors.Wrap(err, "accept smux stream")
	}

	return &Link{stream: stream, sess: sess}, nil
}

// Close stops accepting new connections.
func (l *Listener) Close() error {
	return l.listener.Close()
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr {
	return l.listener.Addr()
}
