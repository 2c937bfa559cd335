// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the explanation engine over HTTP. The layer is
// deliberately thin: validation, one engine call, one response. Upstream
// failures surface as a generic 500, never as partial output.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hkrish/concept-engine/pkg/types"
)

// defaultTimeMinutes is used when the request omits a usable duration.
const defaultTimeMinutes = 5

// Explainer is the engine surface the server consumes.
type Explainer interface {
	Explain(ctx context.Context, query string, timeMinutes int) (types.Explanation, error)
}

// Server routes HTTP requests to the engine.
type Server struct {
	engine Explainer
	router *gin.Engine
}

// New builds a Server with CORS and panic recovery configured.
func New(engine Explainer, cfg types.ServerConfig) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	s := &Server{engine: engine, router: router}

	router.POST("/recommend", s.recommend)
	router.GET("/health", s.health)

	return s
}

// Router returns the underlying gin router, for tests and embedding.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run listens on addr until the process exits.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

type recommendRequest struct {
	Topic       string `json:"topic"`
	TimeMinutes int    `json:"time_minutes"`
}

// errorResponse keeps failure bodies shaped like success bodies so
// clients can always read explanation and related_topics.
func errorResponse(msg string) gin.H {
	return gin.H{
		"error":          msg,
		"explanation":    "",
		"related_topics": []string{},
	}
}

func (s *Server) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid request body"))
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, errorResponse("Topic is required"))
		return
	}

	minutes := req.TimeMinutes
	if minutes <= 0 {
		minutes = defaultTimeMinutes
	}

	result, err := s.engine.Explain(c.Request.Context(), topic, minutes)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("explain request failed")
		c.JSON(http.StatusInternalServerError, errorResponse("Internal server error"))
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
