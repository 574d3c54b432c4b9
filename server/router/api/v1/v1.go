// Package v1 implements the JSON API for graph generation.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/graphweave/graphweave/internal/profile"
	"github.com/graphweave/graphweave/plugin/ai"
	"github.com/graphweave/graphweave/plugin/ai/credential"
	"github.com/graphweave/graphweave/plugin/ai/extract"
	"github.com/graphweave/graphweave/plugin/ai/graph"
	"github.com/graphweave/graphweave/plugin/visjs"
	"github.com/graphweave/graphweave/server/middleware"
)

// APIV1Service wires the pipeline components behind the HTTP API.
type APIV1Service struct {
	Profile  *profile.Profile
	Resolver *credential.Resolver

	extractor *extract.Extractor
	builder   *graph.Builder
	renderer  *visjs.Renderer

	logger  *slog.Logger
	limiter *middleware.RateLimiter
	// pipelineSem bounds concurrent pipeline runs; the UI triggers one run
	// per user action but nothing stops several browsers at once.
	pipelineSem *semaphore.Weighted
}

// NewAPIV1Service creates the API service with its full pipeline.
func NewAPIV1Service(p *profile.Profile, resolver *credential.Resolver, logger *slog.Logger) *APIV1Service {
	llm := ai.NewGroqService(&ai.Config{
		BaseURL:   p.GroqBaseURL,
		ChatModel: p.ChatModel,
		Timeout:   p.LLMTimeout,
	})
	return newAPIV1Service(p, resolver, llm, logger)
}

// newAPIV1Service allows injecting a fake LLM in tests.
func newAPIV1Service(p *profile.Profile, resolver *credential.Resolver, llm ai.LLMService, logger *slog.Logger) *APIV1Service {
	return &APIV1Service{
		Profile:     p,
		Resolver:    resolver,
		extractor:   extract.NewExtractor(llm),
		builder:     graph.NewBuilder(),
		renderer:    visjs.NewRenderer(),
		logger:      logger,
		limiter:     middleware.NewRateLimiter(rate.Limit(1), 5),
		pipelineSem: semaphore.NewWeighted(p.MaxConcurrentExtractions),
	}
}

// Register registers the API routes with the given Echo instance.
func (s *APIV1Service) Register(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/graph", s.GenerateGraph)
	g.GET("/workspace/status", s.GetWorkspaceStatus)
}

// WorkspaceStatusResponse tells the frontend whether the server already has
// a credential and which model it talks to.
type WorkspaceStatusResponse struct {
	CredentialConfigured bool   `json:"credential_configured"`
	ChatModel            string `json:"chat_model"`
	Mode                 string `json:"mode"`
	Version              string `json:"version"`
}

// GetWorkspaceStatus returns the workspace status.
// GET /api/v1/workspace/status
func (s *APIV1Service) GetWorkspaceStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, WorkspaceStatusResponse{
		CredentialConfigured: s.Resolver.Configured(),
		ChatModel:            s.Profile.ChatModel,
		Mode:                 s.Profile.Mode,
		Version:              s.Profile.Version,
	})
}
