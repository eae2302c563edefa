// Command chroma-ctl is an interactive console for driving RGB lighting
// sessions against the local control plane.
//
// This command demonstrates a complete lighting client with:
//   - CLI argument parsing
//   - Session handshake and graceful teardown
//   - Background keep-alive with failure reporting
//   - Per-category device control
//   - Structured logging
//
// Usage:
//
//	chroma-ctl [flags]
//
// Flags:
//
//	-endpoint string   Handshake endpoint (default the local control plane)
//	-title string      Application title announced in the handshake
//	-author string     Author name announced in the handshake
//	-contact string    Author contact announced in the handshake
//	-game              Announce the application as a game
//	-log-level string  Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Connect to the local control plane
//	chroma-ctl -title "My Lighting App"
//
//	# Connect to a non-standard endpoint with debug logging
//	chroma-ctl -endpoint http://localhost:54236/razer/chromasdk -log-level debug
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chroma-sdk/chroma-go/cmd/chroma-ctl/interactive"
	"github.com/chroma-sdk/chroma-go/pkg/backend"
	"github.com/chroma-sdk/chroma-go/pkg/backend/rest"
	"github.com/chroma-sdk/chroma-go/pkg/device"
	"github.com/chroma-sdk/chroma-go/pkg/effect"
	chromalog "github.com/chroma-sdk/chroma-go/pkg/log"
)

// Config holds the console configuration.
type Config struct {
	Endpoint string
	Title    string
	Author   string
	Contact  string
	Game     bool
	LogLevel string
}

var config Config

func init() {
	flag.StringVar(&config.Endpoint, "endpoint", rest.DefaultEndpoint, "Handshake endpoint")
	flag.StringVar(&config.Title, "title", "chroma-ctl", "Application title announced in the handshake")
	flag.StringVar(&config.Author, "author", "chroma-go", "Author name announced in the handshake")
	flag.StringVar(&config.Contact, "contact", "https://github.com/chroma-sdk/chroma-go", "Author contact announced in the handshake")
	flag.BoolVar(&config.Game, "game", false, "Announce the application as a game")
	flag.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func main() {
	flag.Parse()

	logger := setupLogging(config.LogLevel)

	b := rest.New(rest.Config{
		Endpoint: config.Endpoint,
		Logger:   chromalog.NewSlogAdapter(logger),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A failed keep-alive leaves the session unusable; shut down.
	b.SetSessionErrorHandler(func(err error) {
		logger.Error("session lost", "err", err)
		cancel()
	})

	app := backend.AppInfo{
		Title:       config.Title,
		Description: "Interactive lighting console",
		Author: backend.Author{
			Name:    config.Author,
			Contact: config.Contact,
		},
		SupportedDevices: []effect.Category{
			effect.CategoryKeyboard,
			effect.CategoryMouse,
			effect.CategoryMousepad,
			effect.CategoryHeadset,
			effect.CategoryKeypad,
			effect.CategoryLink,
		},
		Gaming: config.Game,
	}

	if err := b.Initialize(ctx, app); err != nil {
		logger.Error("handshake failed", "endpoint", config.Endpoint, "err", err)
		os.Exit(1)
	}
	session, _ := b.Session()
	logger.Info("session established", "session", session.ID, "uri", session.BaseURL)

	dir := device.NewDirectory(b, device.DirectoryConfig{
		Logger: chromalog.NewSlogAdapter(logger),
	})

	console, err := interactive.New(b, dir)
	if err != nil {
		logger.Error("failed to start console", "err", err)
		_ = b.Uninitialize(context.Background())
		os.Exit(1)
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	console.Run(ctx, cancel)

	_ = dir.Close()
	if err := b.Uninitialize(context.Background()); err != nil {
		logger.Warn("teardown failed", "err", err)
	}
	fmt.Println("Goodbye!")
}

func setupLogging(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
