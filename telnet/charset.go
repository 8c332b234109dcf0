package telnet

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

type decoder interface {
	Bytes(b []byte) ([]byte, error)
}

// Charset decodes incoming data bytes into UTF-8 text for display. Telnet
// traffic is US-ASCII by default (RFC 854), but plenty of live services
// speak UTF-8 or a legacy code page instead, so the name is configurable
// with anything the IANA index knows.
type Charset struct {
	name    string
	decoder decoder
}

func NewCharset(codePage string) (*Charset, error) {
	if strings.ToLower(codePage) == "utf-8" {
		return &Charset{
			// The Replacement encoding's encoder, not its decoder, is the
			// form that passes valid UTF-8 through and substitutes U+FFFD
			// for anything else
			decoder: encoding.Replacement.NewEncoder(),
			name:    "UTF-8",
		}, nil
	}

	charset, err := ianaindex.IANA.Encoding(codePage)
	if err != nil {
		return nil, err
	}
	if charset == nil {
		return nil, errors.New("ianaindex: unsupported encoding")
	}

	name, err := ianaindex.IANA.Name(charset)
	if err != nil {
		return nil, err
	}

	return &Charset{
		decoder: charset.NewDecoder(),
		name:    name,
	}, nil
}

func (c *Charset) Name() string {
	return c.name
}

func (c *Charset) Decode(incomingText []byte) (string, error) {
	b, err := c.decoder.Bytes(incomingText)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(string(b), "\ufffd"), nil
}
