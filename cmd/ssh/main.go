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
	wishlog "github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/tomz197/debugbird/internal/config"
	"github.com/tomz197/debugbird/internal/draw"
	"github.com/tomz197/debugbird/internal/logging"
	"github.com/tomz197/debugbird/internal/loop"
	"github.com/tomz197/debugbird/internal/portfolio"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger := logging.New(os.Stderr, config.GetEnv("LOG_LEVEL", "info"))

	tuning, err := config.LoadTuning(config.GetEnv("TUNING_FILE", ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &pageHandler{tuning: tuning, log: logger, shutdown: shutdownCtx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			wishlog.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for input
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
		logger.Fatal("failed to create server", "err", err)
	}

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
		os.Exit(1)
	}
}

// pageHandler runs one independent portfolio page per SSH session.
type pageHandler struct {
	tuning   config.Tuning
	log      *log.Logger
	shutdown context.Context
}

func (h *pageHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.log.With("session", uuid.NewString(), "user", sess.User())
		logger.Info("page session started", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stopAfter := context.AfterFunc(h.shutdown, cancel)
		defer stopAfter()

		err := loop.Run(ctx, bufio.NewReader(sess), sess, loop.Options{
			Page: portfolio.Options{
				Tuning:  h.tuning,
				Content: portfolio.DefaultContent(),
			},
			TermSize:    sizeTracker.getSize,
			IdleWarn:    config.InactivityWarnUser * time.Second,
			IdleTimeout: config.InactivityDisconnectUser * time.Second,
			Logger:      logger,
		})
		if err != nil {
			logger.Error("page session failed", "err", err)
		}

		logger.Info("page session ended")
		next(sess)
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
