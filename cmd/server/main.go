package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/qnkhuat/tetristerm/pkg/logging"
	"github.com/qnkhuat/tetristerm/pkg/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	listenAddress := flag.String("listen", server.SshPort, "SSH listen address")
	hostKey := flag.String("host-key", "", "path to SSH host key, generated when empty")
	clientBinary := flag.String("client", "tetristerm", "path to tetristerm client")
	clientLog := flag.String("client-log", os.DevNull, "log file passed to every client")
	logPath := flag.String("log", "stderr", "path to log file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger, err := logging.InitLog(*logPath, "server", *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	s, err := server.NewServer(server.Options{
		Addr:         *listenAddress,
		HostKeyFile:  *hostKey,
		ClientBinary: *clientBinary,
		ClientArgs:   []string{"--log", *clientLog},
	}, logger)
	if err != nil {
		logger.Fatal("failed to create server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- s.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}
}
