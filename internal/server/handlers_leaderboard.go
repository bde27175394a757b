package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/WolfDWyc/obscure-sorrows-browser/internal/errors"
)

func (s *Server) handleLeaderboard(c echo.Context) error {
	board, err := s.app.Leaderboard(c.Request().Context())
	if err != nil {
		return apperrors.InternalError("failed to compute leaderboard", err)
	}

	out := make([]leaderboardEntryJSON, 0, len(board))
	for _, e := range board {
		out = append(out, leaderboardEntryJSON{
			WordID:       e.WordID,
			Word:         e.Word,
			Average:      e.Average,
			TotalRatings: e.TotalRatings,
		})
	}

	return c.JSON(http.StatusOK, out)
}
