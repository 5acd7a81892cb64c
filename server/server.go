// Package server implements the voice-assistant web endpoint: it validates
// an incoming multipart request, runs the transcribe → complete → synthesize
// pipeline against the upstream providers, and streams the reply audio back
// with the transcript and reply text in response headers.
package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parleylabs/parley/pkg/chat"
	"github.com/parleylabs/parley/pkg/journal"
	"github.com/parleylabs/parley/pkg/stt"
	"github.com/parleylabs/parley/pkg/tts"
)

// Completer requests a chat completion for a prepared message list.
// chat.Client is the production implementation; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, messages []chat.Message) (*chat.CompletionResponse, error)
}

// Server is the voice-assistant endpoint. Each request is self-contained:
// the caller supplies the conversation history, the three pipeline stages
// run strictly in order, and nothing is shared between requests beyond the
// best-effort turn journal.
type Server struct {
	config      Config
	logger      *zap.Logger
	transcriber stt.Transcriber
	completer   Completer
	synthesizer tts.Synthesizer
	recorder    journal.Recorder
	app         *fiber.App
}

// New creates a new Server with production upstream clients.
func New(config Config, logger *zap.Logger) (*Server, error) {
	var recorder journal.Recorder
	if config.JournalPath != "" {
		var err error
		recorder, err = journal.NewSQLiteRecorder(config.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite journal: %w", err)
		}
		logger.Info("using SQLite journal", zap.String("path", config.JournalPath))
	} else {
		recorder = journal.NewMemoryRecorder()
		logger.Info("using in-memory journal")
	}

	s := &Server{
		config:      config,
		logger:      logger,
		transcriber: stt.NewDeepgramClient(config.STT),
		completer:   chat.NewClient(config.Chat),
		synthesizer: tts.NewElevenLabsClient(config.TTS),
		recorder:    recorder,
	}

	app, err := s.newApp()
	if err != nil {
		recorder.Close()
		return nil, err
	}
	s.app = app

	return s, nil
}

// newApp builds the fiber application and registers routes.
func (s *Server) newApp() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		// Disable startup message for cleaner logs
		DisableStartupMessage: true,
		// Recorded clips can be large
		BodyLimit: 16 * 1024 * 1024,
	})

	app.Post("/api/converse", s.handleConverse)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	// Journal inspection
	app.Get("/api/turns", s.handleListTurns)

	// Browser client, registered last as the fallback
	static, err := staticHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to set up client page: %w", err)
	}
	app.Use("/", static)

	return app, nil
}

// Run starts the server on the configured listening address.
func (s *Server) Run() error {
	s.logger.Info("starting voice endpoint",
		zap.String("listen", s.config.ListenAddr),
		zap.String("chat_model", s.config.Chat.Model),
		zap.String("voice", s.config.TTS.VoiceID),
	)

	return s.app.Listen(s.config.ListenAddr)
}

// Close shuts down the server and releases resources.
func (s *Server) Close() error {
	return s.recorder.Close()
}

// handleListTurns returns the journal contents, newest first.
func (s *Server) handleListTurns(c *fiber.Ctx) error {
	turns, err := s.recorder.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list journal turns", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(map[string]string{"error": "failed to list turns"})
	}

	return c.JSON(map[string]any{
		"count": len(turns),
		"turns": turns,
	})
}
