package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/qnkhuat/tetristerm/pkg/config"
	"github.com/qnkhuat/tetristerm/pkg/event"
	"github.com/qnkhuat/tetristerm/pkg/logging"
	"github.com/qnkhuat/tetristerm/pkg/mino"
	"github.com/qnkhuat/tetristerm/pkg/sound"
	"github.com/qnkhuat/tetristerm/pkg/window"
)

func main() {
	logPath := flag.String("log", "stderr", "path to log file")
	debug := flag.Bool("debug", false, "enable debug logging")
	configPath := flag.String("config", config.DefaultPath(), "path to config file")
	seed := flag.Int64("seed", 0, "piece sequence seed, random when 0")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	logger, err := logging.InitLog(*logPath, "window", *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
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

	w, err := window.New(mino.NewSpawner(*seed, mino.Templates, mino.BoardWidth), cfg.DropInterval(), cfg.Palette, sounder, logger)
	if err != nil {
		logger.Fatal("failed to create window", zap.Error(err))
	}

	ebiten.SetWindowSize(window.ScreenWidth, window.ScreenHeight)
	ebiten.SetWindowTitle("tetristerm")

	if err := ebiten.RunGame(w); err != nil {
		logger.Fatal("window exited", zap.Error(err))
	}
}
