// Package telnet implements the wire layer of a telnet connection: an
// incremental frame decoder that segments the incoming byte stream into
// IAC commands, ANSI control sequences, and plain data, plus the option
// negotiation encoding layered on the same format.
package telnet

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
)

// Conn owns one telnet connection: the underlying socket and the
// accumulation buffer holding bytes received but not yet framed.
//
// A Conn is not safe for concurrent use. Each connection is expected to be
// driven by a single goroutine that alternates NextFrame and Send calls.
type Conn struct {
	conn    net.Conn
	buf     bytes.Buffer
	readBuf [4096]byte
}

func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// NextFrame returns the next complete frame from the peer. When a frame is
// already decodable from buffered bytes it is returned without touching the
// network; otherwise NextFrame reads from the socket until a frame
// completes. It returns io.EOF once the peer closes the connection- read
// errors are not distinguished from a close, the connection is simply
// assumed dead.
//
// Cancelling ctx stops the loop between reads. Interrupting a read already
// in flight requires closing the connection, which the owner of ctx is
// expected to arrange.
func (c *Conn) NextFrame(ctx context.Context) (Frame, error) {
	for {
		if frame, ok := Decode(&c.buf); ok {
			return frame, nil
		}

		if err := ctx.Err(); err != nil {
			return Frame{}, err
		}

		n, _ := c.conn.Read(c.readBuf[:])
		if n > 0 {
			c.buf.Write(c.readBuf[:n])
			continue
		}

		// Zero bytes read means the peer closed the connection; a read
		// error is treated the same way. A partial frame still in the
		// buffer is dropped with the connection.
		return Frame{}, io.EOF
	}
}

// Send writes b to the peer in full. A failed write means the connection
// should be treated as dead.
func (c *Conn) Send(b []byte) error {
	for {
		_, err := c.conn.Write(b)

		// Retry when error is temporary
		var netErr net.Error
		if errors.As(err, &netErr) {
			if netErr.Temporary() {
				continue
			}
		}

		return err
	}
}

// SendNegotiation writes the 3-byte command IAC <verb> <option>.
func (c *Conn) SendNegotiation(verb Verb, option Option) error {
	return c.Send(Negotiation(verb, option))
}

// RequestOptionValue asks the peer to supply a value for option: a DO
// command followed by a subnegotiation block carrying the given
// sub-command byte (normally SubSend).
func (c *Conn) RequestOptionValue(option Option, sub byte) error {
	if err := c.SendNegotiation(Do, option); err != nil {
		return err
	}

	return c.Send(Subnegotiation(option, []byte{sub}))
}

// RequestTerminalType asks the peer to report its terminal type.
func (c *Conn) RequestTerminalType() error {
	return c.RequestOptionValue(TerminalType, SubSend)
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
