package oracle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"

	cerrors "github.com/stevehiehn/chatrun/internal/errors"
)

type fakeChat struct {
	reply string
	err   error
	got   []string
}

func (f *fakeChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		f.got = append(f.got, p.Text)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.reply, genai.RoleModel),
		}},
	}, nil
}

func TestGeminiSendReturnsText(t *testing.T) {
	chat := &fakeChat{reply: "Run ++ls++"}
	g := &Gemini{model: DefaultModel, chat: chat, logger: zaptest.NewLogger(t)}

	got, err := g.Send(context.Background(), "list files")
	require.NoError(t, err)
	assert.Equal(t, "Run ++ls++", got)
	assert.Equal(t, []string{"list files"}, chat.got)
}

func TestGeminiSendWrapsTransportFailure(t *testing.T) {
	chat := &fakeChat{err: errors.New("401 unauthenticated")}
	g := &Gemini{model: DefaultModel, chat: chat, logger: zaptest.NewLogger(t)}

	_, err := g.Send(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.TransportFailure))
	assert.Len(t, chat.got, 1, "failed sends must not be retried")
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), GeminiConfig{}, nil)
	require.Error(t, err)
	assert.True(t, cerrors.IsType(err, cerrors.ConfigError))
}

func TestScriptedReplaysInOrder(t *testing.T) {
	s := &Scripted{Responses: []string{"one", "two"}}
	ctx := context.Background()

	r1, err := s.Send(ctx, "p1")
	require.NoError(t, err)
	r2, err := s.Send(ctx, "p2")
	require.NoError(t, err)
	_, err = s.Send(ctx, "p3")

	assert.Equal(t, "one", r1)
	assert.Equal(t, "two", r2)
	assert.True(t, cerrors.IsType(err, cerrors.TransportFailure))
	assert.Equal(t, []string{"p1", "p2", "p3"}, s.Prompts)
}

func TestScriptedHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&Scripted{Responses: []string{"x"}}).Send(ctx, "p")
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
responses:
  - |
    Let me check.
    ++ls -la++
  - All done.
`), 0o644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	require.Len(t, s.Responses, 2)
	assert.Equal(t, "Let me check.\n++ls -la++\n", s.Responses[0])
}

func TestLoadScriptRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte("responses: []\n"), 0o644))
	_, err := LoadScript(path)
	assert.Error(t, err)
}
