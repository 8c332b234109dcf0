// Package server accepts telnet connections and runs the line-echo
// session loop on top of the telnet wire layer.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/markglenn/orbbs/telnet"
)

type Config struct {
	// Addr is the TCP listen address.
	Addr string

	// IdleTimeout closes a connection that produces no bytes for the
	// given duration. Zero disables the timeout.
	IdleTimeout time.Duration

	// CharsetName is the IANA name of the character set incoming data is
	// decoded with for logging.
	CharsetName string
}

func DefaultConfig() Config {
	return Config{
		Addr:        ":2323",
		CharsetName: "US-ASCII",
	}
}

type Server struct {
	cfg     Config
	log     zerolog.Logger
	charset *telnet.Charset
}

func New(cfg Config, log zerolog.Logger) (*Server, error) {
	charset, err := telnet.NewCharset(cfg.CharsetName)
	if err != nil {
		return nil, fmt.Errorf("charset %q: %w", cfg.CharsetName, err)
	}

	return &Server{
		cfg:     cfg,
		log:     log,
		charset: charset,
	}, nil
}

// ListenAndServe binds the configured address and serves until ctx is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	return s.Serve(ctx, ln)
}

// Serve runs the accept loop on ln, handling each connection in its own
// goroutine. One connection failing never affects the others. Serve
// returns after ctx is cancelled and every session has ended.
func (s *Server) Serve(parent context.Context, ln net.Listener) error {
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	g, ctx := errgroup.WithContext(parent)

	g.Go(func() error {
		<-ctx.Done()
		return ln.Close()
	})

	g.Go(func() error {
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("accept: %w", err)
			}

			s.log.Info().Str("peer", conn.RemoteAddr().String()).Msg("accepted connection")

			g.Go(func() error {
				s.handle(ctx, conn)
				return nil
			})
		}
	})

	err := g.Wait()
	if parent.Err() != nil {
		// Closing the listener during shutdown is not a failure
		return nil
	}

	return err
}
