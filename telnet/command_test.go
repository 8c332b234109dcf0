package telnet

import (
	"bytes"
	"testing"
)

func TestVerbFromByte(t *testing.T) {
	verb, ok := VerbFromByte(251)
	if !ok || verb != Will {
		t.Fatalf("expected WILL, got %v (ok=%v)", verb, ok)
	}

	if _, ok := VerbFromByte(0x42); ok {
		t.Fatal("0x42 should not convert to a verb")
	}
}

func TestOptionFromByte(t *testing.T) {
	option, ok := OptionFromByte(24)
	if !ok || option != TerminalType {
		t.Fatalf("expected TERMINAL-TYPE, got %v (ok=%v)", option, ok)
	}

	if _, ok := OptionFromByte(200); ok {
		t.Fatal("200 should not convert to a named option")
	}
}

func TestNegotiationBytes(t *testing.T) {
	got := Negotiation(Will, Echo)
	if !bytes.Equal(got, []byte{0xFF, 0xFB, 0x01}) {
		t.Fatalf("unexpected negotiation bytes: %v", got)
	}
}

func TestSubnegotiationBytes(t *testing.T) {
	got := Subnegotiation(TerminalType, []byte{SubSend})
	if !bytes.Equal(got, []byte{0xFF, 250, 24, 1, 0xFF, 240}) {
		t.Fatalf("unexpected subnegotiation bytes: %v", got)
	}
}

func TestCommandString(t *testing.T) {
	got := CommandString([]byte{IAC, byte(Will), byte(Echo)})
	if got != "IAC WILL 1" {
		t.Fatalf("unexpected command string: %q", got)
	}

	got = CommandString(Subnegotiation(TerminalType, []byte{SubSend}))
	if got != "IAC SB 24 1 IAC SE" {
		t.Fatalf("unexpected command string: %q", got)
	}
}

func TestFrameString(t *testing.T) {
	frame := Frame{Kind: KindCommand, Bytes: []byte{IAC, byte(Dont), 31}}
	if frame.String() != "IAC DONT 31" {
		t.Fatalf("unexpected frame string: %q", frame.String())
	}

	frame = Frame{Kind: KindData, Bytes: []byte("hi")}
	if frame.String() != `"hi"` {
		t.Fatalf("unexpected frame string: %q", frame.String())
	}
}
