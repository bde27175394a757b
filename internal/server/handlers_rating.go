package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
	apperrors "github.com/WolfDWyc/obscure-sorrows-browser/internal/errors"
)

type rateRequest struct {
	WordID     int64  `json:"word_id"`
	Rating     int    `json:"rating"`
	RatingType string `json:"rating_type"`
}

type rateResponse struct {
	Message string          `json:"message"`
	Stats   ratingStatsJSON `json:"stats"`
}

func (s *Server) handleRate(c echo.Context) error {
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	dim, err := domain.ParseDimension(req.RatingType)
	if err != nil {
		return apperrors.ValidationError("invalid rating_type").WithField("rating_type", req.RatingType)
	}

	stats, err := s.app.Rate(c.Request().Context(), userToken(c), req.WordID, dim, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRating):
			return apperrors.ValidationError("rating must be between 1 and 5").WithField("rating", req.Rating)
		case errors.Is(err, domain.ErrWordNotFound):
			return apperrors.NotFoundError("word not found").WithField("word_id", req.WordID)
		default:
			return apperrors.InternalError("failed to save rating", err)
		}
	}

	return c.JSON(http.StatusOK, rateResponse{
		Message: "Rating saved",
		Stats:   toRatingStatsJSON(stats),
	})
}

func (s *Server) handleUnrate(c echo.Context) error {
	wordID, err := strconv.ParseInt(c.Param("word_id"), 10, 64)
	if err != nil {
		return apperrors.NotFoundError("word not found").WithField("word_id", c.Param("word_id"))
	}

	// Unknown rating_type on removal is a 404: the addressed rating record
	// cannot exist.
	dim, err := domain.ParseDimension(c.QueryParam("rating_type"))
	if err != nil {
		return apperrors.NotFoundError("unknown rating_type").WithField("rating_type", c.QueryParam("rating_type"))
	}

	stats, err := s.app.Unrate(c.Request().Context(), userToken(c), wordID, dim)
	if err != nil {
		if errors.Is(err, domain.ErrWordNotFound) {
			return apperrors.NotFoundError("word not found").WithField("word_id", wordID)
		}
		return apperrors.InternalError("failed to remove rating", err)
	}

	return c.JSON(http.StatusOK, rateResponse{
		Message: "Rating removed",
		Stats:   toRatingStatsJSON(stats),
	})
}

func (s *Server) handleRatedWords(c echo.Context) error {
	ids, err := s.app.RatedWordIDs(c.Request().Context(), userToken(c))
	if err != nil {
		return apperrors.InternalError("failed to list rated words", err)
	}

	return c.JSON(http.StatusOK, map[string][]int64{"rated_word_ids": ids})
}
