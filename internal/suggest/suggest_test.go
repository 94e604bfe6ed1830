package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	name   string
	output string
	err    error
	got    string
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(_ context.Context, text string) (string, error) {
	s.got = text
	return s.output, s.err
}

func TestService_CuratedOnUnparseableOutput(t *testing.T) {
	hf := &stubGenerator{name: "huggingface", output: "You should improve your summary."}
	or := &stubGenerator{name: "openrouter", output: "1. Add metrics"}
	svc := NewService(hf, or, time.Second, nil)

	got, err := svc.Suggest(context.Background(), "resume text")
	require.NoError(t, err)
	require.Len(t, got, 12)
	assert.Equal(t, huggingFaceCurated, got[:6])
	assert.Equal(t, openRouterCurated, got[6:])
}

func TestService_FailuresUseFallbacks(t *testing.T) {
	hf := &stubGenerator{name: "huggingface", err: errors.New("down")}
	or := &stubGenerator{name: "openrouter", err: errors.New("down")}
	svc := NewService(hf, or, 0, nil)

	got, err := svc.Suggest(context.Background(), "resume text")
	require.NoError(t, err)
	assert.Equal(t, huggingFaceFallback, got)
}

func TestService_MixedOutcomesKeepOrder(t *testing.T) {
	hf := &stubGenerator{name: "huggingface", err: ErrNotConfigured}
	or := &stubGenerator{name: "openrouter", output: "ok"}
	svc := NewService(hf, or, 0, nil)

	got, err := svc.Suggest(context.Background(), "resume text")
	require.NoError(t, err)
	require.Len(t, got, 8)
	assert.Equal(t, "summary", got[0].Section)
	assert.Equal(t, "experience", got[1].Section)
	assert.Equal(t, "formatting", got[2].Section)
}

func TestService_UsesParsedModelOutput(t *testing.T) {
	modelJSON := `Here you go:
[{"type":"improvement","section":"summary","original":"a","suggested":"b","reason":"c","priority":"high"}]
Thanks.`
	hf := &stubGenerator{name: "huggingface", output: modelJSON}
	or := &stubGenerator{name: "openrouter", err: errors.New("down")}
	svc := NewService(hf, or, 0, nil)

	got, err := svc.Suggest(context.Background(), "resume")
	require.NoError(t, err)
	assert.Equal(t, []Suggestion{{
		Type: "improvement", Section: "summary", Original: "a", Suggested: "b", Reason: "c", Priority: "high",
	}}, got)
}

func TestService_StripsMarkupBeforePrompting(t *testing.T) {
	hf := &stubGenerator{name: "huggingface"}
	or := &stubGenerator{name: "openrouter"}
	svc := NewService(hf, or, 0, nil)

	_, err := svc.Suggest(context.Background(), "<b>Jane</b> & <script>alert(1)</script>Co")
	require.NoError(t, err)
	assert.Equal(t, "Jane & Co", hf.got)
	assert.Equal(t, hf.got, or.got)
}

func TestService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewService(&stubGenerator{name: "huggingface"}, &stubGenerator{name: "openrouter"}, 0, nil)

	_, err := svc.Suggest(ctx, "resume")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseSuggestions_RejectsInvalidEntries(t *testing.T) {
	_, ok := parseSuggestions(`[{"type":"rewrite","section":"summary","suggested":"x","priority":"high"}]`)
	assert.False(t, ok)

	_, ok = parseSuggestions(`[]`)
	assert.False(t, ok)

	_, ok = parseSuggestions(`no json here`)
	assert.False(t, ok)
}

func TestHuggingFaceClient_Generate(t *testing.T) {
	var captured huggingFaceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/microsoft/DialoGPT-medium", r.URL.Path)
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"generated_text":"Improve the summary"}]`))
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.Client(), srv.URL+"/", "hf-key", "microsoft/DialoGPT-medium")
	out, err := c.Generate(context.Background(), "RESUME: Test")
	require.NoError(t, err)

	assert.Equal(t, "Improve the summary", out)
	assert.Equal(t, huggingFacePromptPrefix+"RESUME: Test"+huggingFacePromptSuffix, captured.Inputs)
	assert.Equal(t, 1000, captured.Parameters.MaxNewTokens)
	assert.InDelta(t, 0.7, captured.Parameters.Temperature, 1e-9)
	assert.False(t, captured.Parameters.ReturnFullText)
}

func TestHuggingFaceClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer srv.Close()

	c := NewHuggingFaceClient(srv.Client(), srv.URL, "hf-key", "m")
	_, err := c.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Model is currently loading")
}

func TestHuggingFaceClient_NotConfigured(t *testing.T) {
	c := NewHuggingFaceClient(nil, "https://example.invalid", "", "m")
	_, err := c.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenRouterClient_Generate(t *testing.T) {
	var captured struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer or-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"Use metrics"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	c := NewOpenRouterClient(srv.URL, "or-key", "")
	out, err := c.Generate(context.Background(), "RESUME: Test")
	require.NoError(t, err)

	assert.Equal(t, "Use metrics", out)
	assert.Equal(t, DefaultOpenRouterModel, captured.Model)
	assert.Equal(t, 1500, captured.MaxTokens)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, openRouterSystemPrompt, captured.Messages[0].Content)
	assert.Equal(t, openRouterUserPrefix+"RESUME: Test", captured.Messages[1].Content)
}

func TestOpenRouterClient_NotConfigured(t *testing.T) {
	_, err := NewOpenRouterClient("", "", "").Generate(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
