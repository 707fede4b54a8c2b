package oracle

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	cerrors "github.com/stevehiehn/chatrun/internal/errors"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiConfig configures the Gemini chat session.
type GeminiConfig struct {
	APIKey            string
	Model             string
	SystemInstruction string
	Temperature       *float32
}

// chatSession is the part of *genai.Chat the oracle needs.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini keeps a multi-turn chat with a Gemini model.
type Gemini struct {
	model  string
	chat   chatSession
	logger *zap.Logger
}

// NewGemini opens a chat session. The session starts with an empty history.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, cerrors.NewConfigError("Gemini API key is required", nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, cerrors.NewTransportError("create Gemini client", err)
	}

	genCfg := &genai.GenerateContentConfig{Temperature: cfg.Temperature}
	if cfg.SystemInstruction != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}
	chat, err := client.Chats.Create(ctx, model, genCfg, nil)
	if err != nil {
		return nil, cerrors.NewTransportError(fmt.Sprintf("start chat with %s", model), err)
	}
	logger.Info("chat session started", zap.String("model", model))
	return &Gemini{model: model, chat: chat, logger: logger}, nil
}

// Model returns the model name in use.
func (g *Gemini) Model() string { return g.model }

// Send delivers prompt as the next user message. Failures are returned as
// transport errors and are not retried.
func (g *Gemini) Send(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("sending prompt", zap.Int("bytes", len(prompt)))
	resp, err := g.chat.SendMessage(ctx, genai.Part{Text: prompt})
	if err != nil {
		g.logger.Warn("send failed", zap.Error(err))
		return "", cerrors.NewTransportError("send message", err)
	}
	text := resp.Text()
	g.logger.Debug("response received", zap.Int("bytes", len(text)))
	return text, nil
}
