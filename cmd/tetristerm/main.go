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
	"golang.org/x/term"

	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/gui"
	"github.com/qnkhuat/tetristerm/pkg/logging"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/sound"
)

func main() {
	logPath := flag.String("log", "./log", "path to log file")
	debug := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	session := flag.String("session", "local", "session name used in logs")
	seed := flag.Int64("seed", 0, "piece sequence seed, random when 0")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "failed to start tetristerm: non-interactive terminals are not supported")
		os.Exit(1)
	}

	logger, err := logging.InitLog(*logPath, "client", *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger = logger.With(zap.String("session", *session))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	theme, err := gui.ThemeFromPalette(cfg.Palette)
	if err != nil {
		logger.Fatal("failed to load theme", zap.Error(err))
	}

	keybindings, err := gui.ParseKeybindings(cfg.Actions())
	if err != nil {
		logger.Fatal("failed to load keybindings", zap.Error(err))
	}

	var sounder event.Handler
	if cfg.Sound && !*mute {
		player := sound.NewPlayer(logger)
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			defer player.Close()
			sounder = player.Handle
		}
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	logger.Info("new client", zap.Int64("seed", *seed), zap.String("config", *configPath))

	g := gui.New(mino.NewSpawner(*seed, mino.Templates, mino.BoardWidth), cfg.DropInterval(), gui.Options{
		Name:        *session,
		Theme:       theme,
		BlockWidth:  cfg.BlockWidth,
		Keybindings: keybindings,
		Events:      sounder,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := g.Run(ctx); err != nil {
		logger.Fatal("gui exited", zap.Error(err))
	}

	rows, score := g.Snapshot()
	gui.PrintBoard(os.Stdout, rows, score)
}
