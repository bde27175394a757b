package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no identity required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes. Reads and rating writes mint an identity cookie when the
	// caller has none; only rating removal insists on an existing identity.
	api := s.echo.Group("/api")
	api.GET("/random-word", s.handleRandomWord, s.withIdentity)
	api.GET("/word/:identifier", s.handleGetWord, s.withIdentity)
	api.GET("/next-word-id/:id", s.handleNextWordID)
	api.GET("/prev-word-id/:id", s.handlePrevWordID)
	api.GET("/rated-words", s.handleRatedWords, s.withIdentity)
	api.GET("/leaderboard", s.handleLeaderboard)
	api.POST("/rate", s.handleRate, s.withIdentity)
	api.DELETE("/rate/:word_id", s.handleUnrate, s.requireIdentity)
}
