package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"AutopaintClient/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGeminiAgainst(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGemini(config.GeminiConfig{Endpoint: srv.URL, Model: "gemini-2.0-flash-exp"}, zap.NewNop().Sugar())
}

func TestGeminiSendBuildsNativeRequest(t *testing.T) {
	var gotPath, gotKey, gotCT string
	var gotBody geminiRequest

	c := newGeminiAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotCT = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &gotBody))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`))
	})

	body, err := c.Send(context.Background(), "secret", "draw", "aW1n")
	require.NoError(t, err)
	assert.Contains(t, body, "candidates")

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash-exp:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotCT)
	require.Len(t, gotBody.Contents, 1)
	require.Len(t, gotBody.Contents[0].Parts, 2)
	assert.Equal(t, "draw", gotBody.Contents[0].Parts[0].Text)
	require.NotNil(t, gotBody.Contents[0].Parts[1].InlineData)
	assert.Equal(t, "image/png", gotBody.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "aW1n", gotBody.Contents[0].Parts[1].InlineData.Data)
}

func TestGeminiSendWithoutImageHasSinglePart(t *testing.T) {
	var gotBody geminiRequest
	c := newGeminiAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := c.Send(context.Background(), "k", "text only", "")
	require.NoError(t, err)
	require.Len(t, gotBody.Contents, 1)
	assert.Len(t, gotBody.Contents[0].Parts, 1)
}

func TestGeminiSendClassifiesOverload(t *testing.T) {
	c := newGeminiAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"The model is overloaded"}}`))
	})
	_, err := c.Send(context.Background(), "k", "draw", "")
	assert.ErrorIs(t, err, ErrOverloaded)
}

func TestGeminiSendHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newGeminiAgainst(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := c.Send(ctx, "k", "draw", "")
	assert.Error(t, err)
}
