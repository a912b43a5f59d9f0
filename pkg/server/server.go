package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"time"

	"github.com/creack/pty"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/gliderlabs/ssh"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
	MaxSessionName    = 16
)

var sessionNameRegexp = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// SessionName turns an SSH user name into a name safe to pass on a command
// line. Empty names get a random pet name.
func SessionName(user string) string {
	name := sessionNameRegexp.ReplaceAllString(user, "")
	if len(name) > MaxSessionName {
		name = name[:MaxSessionName]
	}
	if name == "" {
		name = petname.Generate(2, "-")
	}

	return name
}

// Server hosts the terminal client over SSH. Every PTY session runs its own
// client process, sessions share nothing.
type Server struct {
	*ssh.Server

	ClientBinary string
	ClientArgs   []string

	logger *zap.Logger
}

type Options struct {
	Addr         string
	HostKeyFile  string
	ClientBinary string
	ClientArgs   []string
	IdleTimeout  time.Duration
}

func NewServer(opts Options, logger *zap.Logger) (*Server, error) {
	if opts.ClientBinary == "" {
		return nil, errors.New("client binary must be specified")
	}
	if opts.Addr == "" {
		opts.Addr = SshPort
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = ServerIdleTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		ClientBinary: opts.ClientBinary,
		ClientArgs:   opts.ClientArgs,
		logger:       logger,
	}

	s.Server = &ssh.Server{
		Addr:        opts.Addr,
		IdleTimeout: opts.IdleTimeout,
		Handler:     s.handleSession,
		PtyCallback: func(ctx ssh.Context, pty ssh.Pty) bool {
			return true
		},
		PublicKeyHandler: func(ctx ssh.Context, key ssh.PublicKey) bool {
			return true
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return true
		},
		KeyboardInteractiveHandler: func(ctx ssh.Context, challenger gossh.KeyboardInteractiveChallenge) bool {
			return true
		},
	}

	// Without a host key file gliderlabs/ssh generates a key on start.
	if opts.HostKeyFile != "" {
		if err := s.SetOption(ssh.HostKeyFile(opts.HostKeyFile)); err != nil {
			return nil, fmt.Errorf("failed to load host key: %w", err)
		}
	}

	return s, nil
}

// Command returns the client command for a session.
func (s *Server) Command(ctx context.Context, name string, term string) *exec.Cmd {
	args := append([]string{"--session", name}, s.ClientArgs...)

	cmd := exec.CommandContext(ctx, s.ClientBinary, args...)
	cmd.Env = append(cmd.Env, fmt.Sprintf("TERM=%s", term))

	return cmd
}

func (s *Server) handleSession(sshSession ssh.Session) {
	ptyReq, winCh, isPty := sshSession.Pty()
	if !isPty {
		io.WriteString(sshSession, "failed to start tetristerm: non-interactive terminals are not supported\n")

		sshSession.Exit(1)
		return
	}

	name := SessionName(sshSession.User())
	logger := s.logger.With(zap.String("session", name), zap.Stringer("remote", sshSession.RemoteAddr()))

	cmdCtx, cancelCmd := context.WithCancel(sshSession.Context())
	defer cancelCmd()

	cmd := s.Command(cmdCtx, name, ptyReq.Term)

	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(ptyReq.Window.Height), Cols: uint16(ptyReq.Window.Width)})
	if err != nil {
		logger.Error("failed to start client", zap.Error(err))
		io.WriteString(sshSession, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))

		sshSession.Exit(1)
		return
	}
	defer f.Close()

	logger.Info("session started")

	go func() {
		for win := range winCh {
			if err := pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)}); err != nil {
				logger.Warn("failed to resize", zap.Error(err))
			}
		}
	}()

	go func() {
		io.Copy(f, sshSession)
	}()
	io.Copy(sshSession, f)

	cancelCmd()
	if err := cmd.Wait(); err != nil {
		logger.Debug("client exited", zap.Error(err))
	}

	logger.Info("session ended")
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info("listening", zap.String("addr", s.Addr))

	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to serve ssh: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")

	return s.Server.Shutdown(ctx)
}
