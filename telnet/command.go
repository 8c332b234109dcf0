package telnet

import (
	"strconv"
	"strings"
)

const (
	// SE terminates a subnegotiation block.
	SE byte = 240
	// SB opens a subnegotiation block.
	SB byte = 250
	// IAC introduces every telnet command.
	IAC byte = 255

	// ESC and CSIOpen together introduce an ANSI control sequence.
	ESC     byte = 0x1B
	CSIOpen byte = '['
)

// Subnegotiation sub-command bytes used when exchanging option values.
const (
	SubIs   byte = 0
	SubSend byte = 1
)

// Verb is a negotiation command byte: the second byte of a 3-byte
// IAC command.
type Verb byte

const (
	Will Verb = 251
	Wont Verb = 252
	Do   Verb = 253
	Dont Verb = 254
)

var verbNames = map[Verb]string{
	Will: "WILL",
	Wont: "WONT",
	Do:   "DO",
	Dont: "DONT",
}

// VerbFromByte converts a wire byte to a Verb. The second return is false
// for bytes outside the negotiation verb range.
func VerbFromByte(b byte) (Verb, bool) {
	verb := Verb(b)
	_, ok := verbNames[verb]
	return verb, ok
}

func (v Verb) String() string {
	name, ok := verbNames[v]
	if !ok {
		return strconv.Itoa(int(v))
	}

	return name
}

// Option is a negotiation option byte: the third byte of a 3-byte
// IAC command, naming the capability under negotiation.
type Option byte

const (
	Echo            Option = 1
	SuppressGoAhead Option = 3
	TerminalType    Option = 24
	WindowSize      Option = 31
)

var optionNames = map[Option]string{
	Echo:            "ECHO",
	SuppressGoAhead: "SUPPRESS-GO-AHEAD",
	TerminalType:    "TERMINAL-TYPE",
	WindowSize:      "NAWS",
}

// OptionFromByte converts a wire byte to an Option. The second return is
// false for option codes this package has no name for. Unknown codes are
// still legal on the wire- the decoder passes them through untouched.
func OptionFromByte(b byte) (Option, bool) {
	option := Option(b)
	_, ok := optionNames[option]
	return option, ok
}

func (o Option) String() string {
	name, ok := optionNames[o]
	if !ok {
		return strconv.Itoa(int(o))
	}

	return name
}

// Negotiation returns the 3-byte wire form of a negotiation command.
func Negotiation(verb Verb, option Option) []byte {
	return []byte{IAC, byte(verb), byte(option)}
}

// Subnegotiation returns the wire form of a complete subnegotiation block:
// IAC SB <option> <payload> IAC SE.
func Subnegotiation(option Option, payload []byte) []byte {
	b := make([]byte, 0, len(payload)+5)
	b = append(b, IAC, SB, byte(option))
	b = append(b, payload...)
	b = append(b, IAC, SE)

	return b
}

var commandCodes = map[byte]string{
	SE:         "SE",
	SB:         "SB",
	byte(Will): "WILL",
	byte(Wont): "WONT",
	byte(Do):   "DO",
	byte(Dont): "DONT",
	IAC:        "IAC",
}

// CommandString renders raw command bytes in the conventional symbolic form,
// e.g. "IAC WILL 1" or "IAC SB 24 1 IAC SE". Bytes without a command name
// are printed as decimal.
func CommandString(b []byte) string {
	var sb strings.Builder

	for i := 0; i < len(b); i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}

		code, hasCode := commandCodes[b[i]]
		if !hasCode {
			sb.WriteString(strconv.Itoa(int(b[i])))
		} else {
			sb.WriteString(code)
		}
	}

	return sb.String()
}
