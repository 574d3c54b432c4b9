package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	pipeerr "github.com/graphweave/graphweave/server/internal/errors"
	"github.com/graphweave/graphweave/internal/observability"
)

// GenerateGraphRequest is one graph generation request. APIKey is only set
// when the server has no configured credential and the user entered one.
type GenerateGraphRequest struct {
	Text   string `json:"text"`
	APIKey string `json:"api_key,omitempty"`
}

// GraphMetrics are the scalar metrics shown next to the rendered graph.
type GraphMetrics struct {
	ConceptCount    int `json:"concept_count"`
	ConnectionCount int `json:"connection_count"`
	ClusterCount    int `json:"cluster_count"`
}

// GenerateGraphResponse carries the rendered markup, or an empty-graph
// notice when extraction found nothing.
type GenerateGraphResponse struct {
	HTML    string       `json:"html,omitempty"`
	Metrics GraphMetrics `json:"metrics"`
	Empty   bool         `json:"empty,omitempty"`
	Notice  string       `json:"notice,omitempty"`
	BuildMs int64        `json:"build_ms"`
}

// ErrorResponse is the error payload for failed pipeline runs.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GenerateGraph runs one pipeline: validate -> resolve credential ->
// extract -> build -> render. Every failure is terminal for this request
// only; a new button press starts a fresh run.
// POST /api/v1/graph
func (s *APIV1Service) GenerateGraph(c echo.Context) error {
	reqCtx := observability.NewRequestContext(s.logger)

	var req GenerateGraphRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, pipeerr.EmptyInput("invalid request body"))
	}

	if strings.TrimSpace(req.Text) == "" {
		return errorJSON(c, pipeerr.EmptyInput("Please enter some text first."))
	}

	apiKey, ok := s.Resolver.Resolve(req.APIKey)
	if !ok {
		return errorJSON(c, pipeerr.MissingCredential("Please provide a Groq API key to start."))
	}

	if !s.limiter.Allow(c.RealIP()) {
		reqCtx.Warn("rate limit exceeded", slog.String("ip", c.RealIP()))
		return errorJSON(c, pipeerr.RateLimitExceeded("Too many requests, slow down."))
	}

	ctx := c.Request().Context()
	if err := s.pipelineSem.Acquire(ctx, 1); err != nil {
		return errorJSON(c, pipeerr.ExtractionFailed("request canceled", err))
	}
	defer s.pipelineSem.Release(1)

	reqCtx.Debug("starting extraction", slog.Int(observability.LogFieldTextLen, len(req.Text)))

	result, err := s.extractor.Extract(ctx, apiKey, req.Text)
	if err != nil {
		perr := pipeerr.ExtractionFailed("Error calling Groq API", err)
		reqCtx.Error("extraction failed", err,
			slog.String(observability.LogFieldErrorCode, string(perr.GetCode())))
		return errorJSON(c, perr)
	}

	cg := s.builder.Build(result)
	if cg.IsEmpty() {
		reqCtx.Info("extraction yielded no concepts",
			slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))
		return c.JSON(http.StatusOK, GenerateGraphResponse{
			Empty:  true,
			Notice: "No concepts found in the text. Try a different text.",
		})
	}

	html, err := s.renderer.Render(cg)
	if err != nil {
		perr := pipeerr.RenderFailed("failed to render graph", err)
		reqCtx.Error("render failed", err,
			slog.String(observability.LogFieldErrorCode, string(perr.GetCode())))
		return errorJSON(c, perr)
	}

	reqCtx.Info("graph generated",
		slog.Int(observability.LogFieldNodeCount, cg.Stats.NodeCount),
		slog.Int(observability.LogFieldEdgeCount, cg.Stats.EdgeCount),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()))

	return c.JSON(http.StatusOK, GenerateGraphResponse{
		HTML: html,
		Metrics: GraphMetrics{
			ConceptCount:    cg.Stats.NodeCount,
			ConnectionCount: cg.Stats.EdgeCount,
			ClusterCount:    cg.Stats.ClusterCount,
		},
		BuildMs: cg.BuildMs,
	})
}

func errorJSON(c echo.Context, err *pipeerr.PipelineError) error {
	return c.JSON(err.HTTPStatus(), ErrorResponse{
		Code:    string(err.GetCode()),
		Message: err.UserMessage(),
	})
}
