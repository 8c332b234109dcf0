package telnet

import (
	"bytes"
	"fmt"
	"strconv"
)

// FrameKind classifies the bytes carried by a Frame.
type FrameKind int

const (
	// KindData is a run of ordinary bytes containing no IAC or ESC.
	KindData FrameKind = iota
	// KindCommand is a complete IAC command, framing bytes included.
	KindCommand
	// KindControlEscape is a complete ANSI control sequence, from ESC '['
	// through its final byte.
	KindControlEscape
)

// Frame is one complete unit segmented out of the incoming byte stream.
// Bytes is an owned copy; it never aliases the accumulation buffer.
type Frame struct {
	Kind  FrameKind
	Bytes []byte
}

func (f Frame) String() string {
	switch f.Kind {
	case KindCommand:
		return CommandString(f.Bytes)
	case KindControlEscape:
		return fmt.Sprintf("CSI %q", f.Bytes)
	default:
		return strconv.Quote(string(f.Bytes))
	}
}

// Decode attempts to extract exactly one complete frame from the head of
// buf, consuming the matched bytes. It reports false when the buffer holds
// only a partial frame (or nothing), in which case no bytes are consumed-
// the caller should read more input and try again.
//
// The sub-decoders are tried in a fixed priority order: IAC commands first,
// then control sequences, then plain data. Command decoding must run first
// because the IAC byte is overloaded- a doubled IAC is an escaped data byte,
// not a command.
func Decode(buf *bytes.Buffer) (Frame, bool) {
	if frame, ok := decodeCommand(buf); ok {
		return frame, true
	}

	if frame, ok := decodeControlEscape(buf); ok {
		return frame, true
	}

	return decodeData(buf)
}

func decodeCommand(buf *bytes.Buffer) (Frame, bool) {
	data := buf.Bytes()
	if len(data) < 2 || data[0] != IAC {
		return Frame{}, false
	}

	// IAC IAC is an escaped literal 255 in the data stream
	if data[1] == IAC {
		buf.Next(2)
		return Frame{Kind: KindData, Bytes: []byte{IAC}}, true
	}

	// IAC SB ... IAC SE: consume through the first terminator, inclusive.
	// A missing terminator means the block is still arriving.
	if data[1] == SB {
		if i := bytes.Index(data, []byte{IAC, SE}); i >= 0 {
			return Frame{Kind: KindCommand, Bytes: consume(buf, i+2)}, true
		}

		return Frame{}, false
	}

	// IAC <verb> <option>. Unrecognized verb/option bytes pass through
	// opaquely- classifying them is the caller's business.
	if len(data) < 3 {
		return Frame{}, false
	}

	return Frame{Kind: KindCommand, Bytes: consume(buf, 3)}, true
}

func decodeControlEscape(buf *bytes.Buffer) (Frame, bool) {
	data := buf.Bytes()
	if len(data) < 2 || data[0] != ESC || data[1] != CSIOpen {
		return Frame{}, false
	}

	// Everything between the introducer and the first final byte
	// (0x40-0x7E) belongs to the sequence
	for i := 2; i < len(data); i++ {
		if data[i] >= 0x40 && data[i] <= 0x7E {
			return Frame{Kind: KindControlEscape, Bytes: consume(buf, i+1)}, true
		}
	}

	return Frame{}, false
}

func decodeData(buf *bytes.Buffer) (Frame, bool) {
	data := buf.Bytes()
	if len(data) == 0 {
		return Frame{}, false
	}

	end := bytes.IndexByte(data, IAC)
	if i := bytes.IndexByte(data, ESC); i >= 0 && (end < 0 || i < end) {
		end = i
	}

	if end == 0 {
		// The command or escape decoder already refused this introducer
		// as incomplete. Refusing here too keeps the decode side-effect
		// free so the caller knows to read more input.
		return Frame{}, false
	}

	if end < 0 {
		end = len(data)
	}

	return Frame{Kind: KindData, Bytes: consume(buf, end)}, true
}

// consume removes n bytes from the head of buf and returns them as an
// owned copy.
func consume(buf *bytes.Buffer, n int) []byte {
	b := make([]byte, n)
	copy(b, buf.Next(n))

	return b
}
