package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/parleylabs/parley/pkg/chat"
)

// Stage identifies the pipeline step that produced a failure.
type Stage string

const (
	StageTranscribe Stage = "transcribe"
	StageComplete   Stage = "complete"
	StageSynthesize Stage = "synthesize"
)

// StageError tags an upstream failure with the stage that produced it, so
// the handler maps it to the right client-facing response instead of
// checking sentinel values.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return string(e.Stage) + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

// pipelineInput is one validated request.
type pipelineInput struct {
	Text      string // Typed input; empty when Audio is set
	Audio     []byte // Recorded clip
	AudioType string // Clip media type as received
	History   []chat.Message
	Prompt    chat.PromptContext
}

// pipelineOutput is a fully successful exchange. The pipeline never
// returns partial results: either every field is populated or the caller
// gets a StageError.
type pipelineOutput struct {
	Transcript string
	Reply      string
	Audio      []byte

	TranscribeTime time.Duration
	CompleteTime   time.Duration
	SynthesizeTime time.Duration
}

// runPipeline executes the three stages strictly in order, short-circuiting
// on the first failure. Text input skips transcription entirely.
func (s *Server) runPipeline(ctx context.Context, reqID string, in *pipelineInput) (*pipelineOutput, *StageError) {
	log := s.logger.With(zap.String("request_id", reqID))
	out := &pipelineOutput{Transcript: in.Text}

	if len(in.Audio) > 0 {
		start := time.Now()
		result, err := s.transcriber.Transcribe(ctx, in.Audio, in.AudioType)
		if err != nil {
			log.Error("transcription failed", zap.Error(err))
			return nil, &StageError{Stage: StageTranscribe, Err: err}
		}
		out.TranscribeTime = time.Since(start)
		out.Transcript = result.Transcript

		log.Info("audio transcribed",
			zap.Duration("duration", out.TranscribeTime),
			zap.Float64("confidence", result.Confidence),
			zap.String("transcript_preview", truncate(out.Transcript, 80)),
		)
	}

	systemPrompt, err := chat.SystemPrompt(in.Prompt)
	if err != nil {
		log.Error("failed to render system prompt", zap.Error(err))
		return nil, &StageError{Stage: StageComplete, Err: err}
	}

	messages := make([]chat.Message, 0, len(in.History)+2)
	messages = append(messages, chat.Message{Role: chat.RoleSystem, Content: systemPrompt})
	messages = append(messages, in.History...)
	messages = append(messages, chat.Message{Role: chat.RoleUser, Content: out.Transcript})

	start := time.Now()
	completion, err := s.completer.Complete(ctx, messages)
	if err != nil {
		log.Error("chat completion failed", zap.Error(err))
		return nil, &StageError{Stage: StageComplete, Err: err}
	}
	out.CompleteTime = time.Since(start)
	out.Reply = strings.TrimSpace(completion.Reply())
	if out.Reply == "" {
		log.Error("chat completion returned no content")
		return nil, &StageError{Stage: StageComplete, Err: errors.New("completion returned no content")}
	}

	log.Info("completion received",
		zap.Duration("duration", out.CompleteTime),
		zap.Int("message_count", len(messages)),
		zap.String("reply_preview", truncate(out.Reply, 80)),
	)

	start = time.Now()
	audio, err := s.synthesizer.Synthesize(ctx, out.Reply)
	if err != nil {
		log.Error("voice synthesis failed", zap.Error(err))
		return nil, &StageError{Stage: StageSynthesize, Err: err}
	}
	out.SynthesizeTime = time.Since(start)
	out.Audio = audio

	log.Info("speech synthesized",
		zap.Duration("duration", out.SynthesizeTime),
		zap.Int("audio_bytes", len(audio)),
	)

	return out, nil
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
