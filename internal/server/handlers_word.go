package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
	apperrors "github.com/WolfDWyc/obscure-sorrows-browser/internal/errors"
)

func (s *Server) handleRandomWord(c echo.Context) error {
	detail, err := s.app.RandomWord(c.Request().Context(), userToken(c))
	if err != nil {
		return wordError(err)
	}
	return c.JSON(http.StatusOK, toWordResponse(detail))
}

func (s *Server) handleGetWord(c echo.Context) error {
	identifier := c.Param("identifier")

	detail, err := s.app.GetWord(c.Request().Context(), identifier, userToken(c))
	if err != nil {
		return wordError(err)
	}
	return c.JSON(http.StatusOK, toWordResponse(detail))
}

func (s *Server) handleNextWordID(c echo.Context) error {
	return s.neighborWordID(c, s.app.NextWordID)
}

func (s *Server) handlePrevWordID(c echo.Context) error {
	return s.neighborWordID(c, s.app.PrevWordID)
}

func (s *Server) neighborWordID(c echo.Context, neighbor func(ctx context.Context, current int64) (int64, error)) error {
	current, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.ValidationError("invalid word id").WithField("id", c.Param("id"))
	}

	id, err := neighbor(c.Request().Context(), current)
	if err != nil {
		return wordError(err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"word_id": id})
}

// wordError maps domain errors from word lookups onto structured errors.
func wordError(err error) error {
	switch {
	case errors.Is(err, domain.ErrWordNotFound):
		return apperrors.NotFoundError("word not found")
	case errors.Is(err, domain.ErrEmptyCatalog):
		return apperrors.NotFoundError("no words found")
	default:
		return apperrors.InternalError("word lookup failed", err)
	}
}
