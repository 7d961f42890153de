package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/kittens/internal/config"
	"github.com/tomz197/kittens/internal/draw"
	"github.com/tomz197/kittens/internal/game"
	"github.com/tomz197/kittens/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	playerDrainTimeout = 15 * time.Second
	shutdownNotice     = 3 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "kittens-ssh",
	})

	if err := run(logger); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func run(logger *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	session, err := config.SessionFromEnv()
	if err != nil {
		return err
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"lanes", session.Lanes(), "lives", session.StartLives)

	// Cancelled on shutdown; every game loop shows a notice and returns.
	games, stopGames := context.WithCancel(context.Background())
	defer stopGames()

	h := &handler{
		session: session,
		logger:  logger,
		games:   games,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-done:
	}

	logger.Info("shutting down server", "players", h.active())
	stopGames()
	h.wait(playerDrainTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// handler runs one independent game per SSH session.
type handler struct {
	session config.Session
	logger  *log.Logger
	games   context.Context

	mu      sync.Mutex
	players int
	closed  bool // Set once wait starts; no further joins
	wg      sync.WaitGroup
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		if !h.join() {
			fmt.Fprintln(sess, "Server is shutting down, try again shortly.")
			return
		}
		defer h.leave()

		logger := h.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("new game session", "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(h.games, cancel)
		defer stop()

		t := loop.NewTerminal(bufio.NewReader(sess), sess, sizeTracker.getSize, h.session)
		if err := t.Open(); err != nil {
			logger.Error("open terminal", "err", err)
			return
		}

		err := loop.Run(ctx, t, loop.Options{
			Session:     h.session,
			Sounds:      game.NopSounds{},
			Logger:      logger,
			IdleTimeout: loop.InactivityDisconnectUser,
			IdleWarning: loop.InactivityWarnUser,
		})
		switch {
		case errors.Is(err, loop.ErrIdle):
			fmt.Fprint(sess, "\r\nDisconnected for inactivity.\r\n")
		case err != nil:
			logger.Error("game error", "err", err)
		}
		if h.games.Err() != nil {
			time.Sleep(shutdownNotice)
		}
		_ = t.Close()

		logger.Info("session ended")
		next(sess)
	}
}

// join registers a session. It fails once shutdown has begun.
func (h *handler) join() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.games.Err() != nil {
		return false
	}
	h.players++
	h.wg.Add(1)
	return true
}

func (h *handler) leave() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.players--
	h.wg.Done()
}

func (h *handler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.players
}

// wait blocks until every session has ended or timeout passes.
func (h *handler) wait(timeout time.Duration) {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		h.logger.Info("all players disconnected")
	case <-time.After(timeout):
		h.logger.Warn("players still connected after drain timeout", "players", h.active())
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
