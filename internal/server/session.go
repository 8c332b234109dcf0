package server

import (
	"context"
	"net"
	"time"

	"github.com/markglenn/orbbs/telnet"
)

// handle runs one connection's session loop until the peer disconnects,
// a write fails, or ctx is cancelled.
func (s *Server) handle(ctx context.Context, nc net.Conn) {
	log := s.log.With().Str("peer", nc.RemoteAddr().String()).Logger()

	conn := telnet.NewConn(nc)
	defer conn.Close()

	// A cancelled context has to unblock the socket read in NextFrame
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	// We take over echoing and output pacing for the whole session
	if err := conn.SendNegotiation(telnet.Will, telnet.Echo); err != nil {
		log.Warn().Err(err).Msg("greeting failed")
		return
	}
	if err := conn.SendNegotiation(telnet.Will, telnet.SuppressGoAhead); err != nil {
		log.Warn().Err(err).Msg("greeting failed")
		return
	}

	for {
		if s.cfg.IdleTimeout > 0 {
			_ = nc.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
		}

		frame, err := conn.NextFrame(ctx)
		if err != nil {
			// End of stream, read failure, and cancellation all end the
			// session the same way
			log.Info().Msg("connection closed")
			return
		}

		switch frame.Kind {
		case telnet.KindCommand:
			log.Info().Str("command", frame.String()).Msg("telnet command received")

		case telnet.KindControlEscape:
			log.Info().Str("sequence", frame.String()).Msg("control sequence received")

		case telnet.KindData:
			text, err := s.charset.Decode(frame.Bytes)
			if err != nil {
				log.Warn().Err(err).Msg("charset decode failed")
			} else {
				log.Debug().Str("text", text).Msg("data received")
			}

			if err := conn.Send(frame.Bytes); err != nil {
				log.Warn().Err(err).Msg("echo failed")
				return
			}
		}
	}
}
