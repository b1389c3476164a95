package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ardanlabs/connect4/cmd/connect/board"
	"github.com/ardanlabs/connect4/cmd/connect/config"
	"github.com/ardanlabs/connect4/cmd/connect/game"
	"github.com/ardanlabs/connect4/cmd/connect/history"
	"github.com/ardanlabs/connect4/cmd/connect/snapshot"
	"github.com/ardanlabs/connect4/cmd/connect/sound"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {

	// -------------------------------------------------------------------------
	// Load the configuration.

	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// -------------------------------------------------------------------------
	// Construct the logger. The terminal belongs to the board so logging only
	// goes to a file when debugging.

	var w io.Writer = io.Discard
	if cfg.Debug {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()

		w = f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("startup", "sound", cfg.Sound, "snapshots", cfg.Snapshots, "history", cfg.MongoURI != "")

	// -------------------------------------------------------------------------
	// Construct the optional collaborators that react to finished games.

	notifiers := make([]game.Notifier, 0, 3)

	if cfg.Snapshots != "" {
		writer, err := snapshot.NewWriter(logger, cfg.Snapshots)
		if err != nil {
			return fmt.Errorf("snapshots: %w", err)
		}

		notifiers = append(notifiers, writer)
	}

	if cfg.MongoURI != "" {
		fmt.Println("Connecting to MongoDB ...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, col, err := history.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return fmt.Errorf("history: %w", err)
		}

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			client.Disconnect(ctx)
		}()

		rec := history.NewRecorder(logger, col)
		defer rec.Close()

		notifiers = append(notifiers, rec)
	}

	// -------------------------------------------------------------------------
	// Create the board and initialize the display.

	if err := os.MkdirAll(cfg.AudioFolder, 0755); err != nil {
		return fmt.Errorf("audio folder: %w", err)
	}

	speaker := sound.New(logger, cfg.AudioFolder, cfg.Sound)
	defer speaker.Wait()

	display, err := board.New(board.Config{
		Log:       logger,
		Speaker:   speaker,
		InfoDelay: cfg.InfoDelay,
	})
	if err != nil {
		return fmt.Errorf("new board: %w", err)
	}
	defer display.Shutdown()

	// -------------------------------------------------------------------------
	// Start handling board input.

	g := game.New(logger, game.Fanout(append([]game.Notifier{display}, notifiers...)...))

	<-display.Run(g)

	logger.Info("shutdown", "game_id", g.ID(), "status", g.Status())

	return nil
}
