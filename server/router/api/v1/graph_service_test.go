package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphweave/graphweave/internal/profile"
	"github.com/graphweave/graphweave/plugin/ai"
	"github.com/graphweave/graphweave/plugin/ai/credential"
)

type fakeLLM struct {
	response   string
	err        error
	credential string
	calls      int
}

func (f *fakeLLM) ChatJSON(_ context.Context, cred string, _ []ai.Message) (string, error) {
	f.calls++
	f.credential = cred
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GROQ_API_KEY", "GRAPHWEAVE_GROQ_API_KEY"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
}

func newTestService(t *testing.T, llm ai.LLMService) *APIV1Service {
	t.Helper()
	p := &profile.Profile{Mode: "dev", Port: 8081, ChatModel: "llama-3.3-70b-versatile"}
	p.FromEnv()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return newAPIV1Service(p, credential.NewResolver(""), llm, logger)
}

func postGraph(t *testing.T, s *APIV1Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/graph", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, s.GenerateGraph(e.NewContext(req, rec)))
	return rec
}

func TestGenerateGraph(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_env")

	llm := &fakeLLM{response: `{
		"concepts": ["A", "B"],
		"relationships": [{"source": "A", "target": "B", "relationship": "uses"}]
	}`}
	s := newTestService(t, llm)

	rec := postGraph(t, s, `{"text": "A uses B."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateGraphResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.False(t, resp.Empty)
	assert.Equal(t, 2, resp.Metrics.ConceptCount)
	assert.Equal(t, 1, resp.Metrics.ConnectionCount)
	assert.Contains(t, resp.HTML, "uses")
	assert.Equal(t, "gsk_env", llm.credential)
	assert.Equal(t, 1, llm.calls)
}

func TestGenerateGraphEmptyText(t *testing.T) {
	clearKeyEnv(t)
	llm := &fakeLLM{}
	s := newTestService(t, llm)

	for _, body := range []string{`{"text": ""}`, `{"text": "   \n  "}`} {
		rec := postGraph(t, s, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "EMPTY_INPUT", resp.Code)
	}
	// The pipeline must short-circuit before the LLM call.
	assert.Equal(t, 0, llm.calls)
}

func TestGenerateGraphMissingCredential(t *testing.T) {
	clearKeyEnv(t)
	s := newTestService(t, &fakeLLM{})

	rec := postGraph(t, s, `{"text": "some text"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_CREDENTIAL", resp.Code)
}

func TestGenerateGraphUserSuppliedKey(t *testing.T) {
	clearKeyEnv(t)
	llm := &fakeLLM{response: `{"concepts": ["A"], "relationships": []}`}
	s := newTestService(t, llm)

	rec := postGraph(t, s, `{"text": "something", "api_key": "gsk_from_browser"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gsk_from_browser", llm.credential)
}

func TestGenerateGraphExtractionError(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_env")

	llm := &fakeLLM{err: errors.New("status code 401: invalid api key")}
	s := newTestService(t, llm)

	rec := postGraph(t, s, `{"text": "some text"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EXTRACTION_FAILED", resp.Code)
	// The provider message is surfaced to the user.
	assert.Contains(t, resp.Message, "invalid api key")
}

func TestGenerateGraphMalformedModelOutput(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_env")

	llm := &fakeLLM{response: `not json at all`}
	s := newTestService(t, llm)

	rec := postGraph(t, s, `{"text": "some text"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "EXTRACTION_FAILED", resp.Code)
}

func TestGenerateGraphNoConcepts(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_env")

	llm := &fakeLLM{response: `{"concepts": [], "relationships": []}`}
	s := newTestService(t, llm)

	rec := postGraph(t, s, `{"text": "gibberish"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp GenerateGraphResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Empty)
	assert.Contains(t, resp.Notice, "No concepts found")
	assert.Empty(t, resp.HTML)
}

func TestGetWorkspaceStatus(t *testing.T) {
	clearKeyEnv(t)
	s := newTestService(t, &fakeLLM{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/workspace/status", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, s.GetWorkspaceStatus(e.NewContext(req, rec)))

	var resp WorkspaceStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.CredentialConfigured)
	assert.Equal(t, "llama-3.3-70b-versatile", resp.ChatModel)

	t.Setenv("GROQ_API_KEY", "gsk_env")
	rec = httptest.NewRecorder()
	require.NoError(t, s.GetWorkspaceStatus(e.NewContext(req, rec)))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.CredentialConfigured)
}
