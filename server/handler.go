package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/parleylabs/parley/pkg/chat"
	"github.com/parleylabs/parley/pkg/journal"
)

// Multipart form fields.
const (
	fieldInput   = "input"
	fieldMessage = "message"
)

// Response headers carrying the out-of-band text. Values are
// percent-encoded since headers cannot hold arbitrary UTF-8 safely.
const (
	HeaderTranscript = "X-Transcript"
	HeaderResponse   = "X-Response"
)

// EncodeHeaderValue percent-encodes text for transport in a response header.
func EncodeHeaderValue(text string) string {
	return url.PathEscape(text)
}

// DecodeHeaderValue reverses EncodeHeaderValue. It also round-trips with
// the browser's decodeURIComponent.
func DecodeHeaderValue(value string) (string, error) {
	return url.PathUnescape(value)
}

// handleConverse runs one full exchange: validate the multipart form,
// execute the pipeline, and stream the synthesized reply back.
func (s *Server) handleConverse(c *fiber.Ctx) error {
	startTime := time.Now()
	reqID := uuid.NewString()
	log := s.logger.With(zap.String("request_id", reqID))

	in, err := s.parseRequest(c)
	if err != nil {
		log.Warn("rejected request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).SendString("Invalid request")
	}

	log.Debug("request accepted",
		zap.Bool("audio_input", len(in.Audio) > 0),
		zap.Int("history_length", len(in.History)),
	)

	out, stageErr := s.runPipeline(c.Context(), reqID, in)
	if stageErr != nil {
		return stageFailure(c, stageErr)
	}

	s.recordTurn(reqID, out)

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	c.Set(HeaderTranscript, EncodeHeaderValue(out.Transcript))
	c.Set(HeaderResponse, EncodeHeaderValue(out.Reply))

	// Stream the body so the total time entry closes only after the last
	// byte has gone out, not when the handler returns.
	audio := out.Audio
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if _, err := w.Write(audio); err != nil {
			log.Warn("client went away mid-stream", zap.Error(err))
			return
		}
		if err := w.Flush(); err != nil {
			log.Warn("client went away mid-stream", zap.Error(err))
			return
		}

		log.Info("response streamed",
			zap.Int("audio_bytes", len(audio)),
			zap.Duration("total_stream_time", time.Since(startTime)),
		)
	}))

	return nil
}

// stageFailure maps a tagged pipeline failure to its client-facing response.
func stageFailure(c *fiber.Ctx, stageErr *StageError) error {
	switch stageErr.Stage {
	case StageTranscribe:
		return c.Status(fiber.StatusBadRequest).SendString("Invalid audio")
	case StageComplete:
		return c.Status(fiber.StatusInternalServerError).SendString("Chat completion failed")
	case StageSynthesize:
		return c.Status(fiber.StatusInternalServerError).SendString("Voice synthesis failed")
	default:
		return c.Status(fiber.StatusInternalServerError).SendString("Internal error")
	}
}

// parseRequest validates the multipart form. There is no partial
// acceptance: any malformed field rejects the whole request.
func (s *Server) parseRequest(c *fiber.Ctx) (*pipelineInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("not a multipart form: %w", err)
	}

	texts := form.Value[fieldInput]
	files := form.File[fieldInput]

	in := &pipelineInput{}

	switch {
	case len(files) == 1 && len(texts) == 0:
		f, err := files[0].Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		audio, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		if len(audio) == 0 {
			return nil, fmt.Errorf("input file is empty")
		}
		in.Audio = audio
		in.AudioType = files[0].Header.Get("Content-Type")

	case len(texts) == 1 && len(files) == 0:
		text := strings.TrimSpace(texts[0])
		if text == "" {
			return nil, fmt.Errorf("input text is empty")
		}
		in.Text = text

	default:
		return nil, fmt.Errorf("expected exactly one input field, got %d text and %d file", len(texts), len(files))
	}

	for _, raw := range form.Value[fieldMessage] {
		var msg chat.Message
		if err := json.Unmarshal([]byte(raw), &msg); err != nil {
			return nil, fmt.Errorf("malformed history entry: %w", err)
		}
		if !chat.ValidRole(msg.Role) {
			return nil, fmt.Errorf("history role %q not allowed", msg.Role)
		}
		in.History = append(in.History, msg)
	}

	in.Prompt = chat.PromptContext{
		Persona:  s.config.Persona,
		Country:  c.Get("CF-IPCountry"),
		City:     c.Get("CF-IPCity"),
		Timezone: c.Get("CF-Timezone"),
	}

	return in, nil
}

// recordTurn journals a successful exchange. Recording never fails the
// request; it is detached from the request context so a disconnecting
// client cannot abort it.
func (s *Server) recordTurn(reqID string, out *pipelineOutput) {
	turn := &journal.Turn{
		ID:               reqID,
		Transcript:       out.Transcript,
		Reply:            out.Reply,
		CreatedAt:        time.Now().UTC(),
		TranscribeMillis: out.TranscribeTime.Milliseconds(),
		CompleteMillis:   out.CompleteTime.Milliseconds(),
		SynthesizeMillis: out.SynthesizeTime.Milliseconds(),
	}

	if err := s.recorder.Record(context.Background(), turn); err != nil {
		s.logger.Warn("failed to record turn",
			zap.String("request_id", reqID),
			zap.Error(err),
		)
	}
}
