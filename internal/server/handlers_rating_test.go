package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
)

func postRate(srv *Server, body string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/rate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		withIdentityCookie(req, token)
	}
	return doRequest(srv, req)
}

func TestRate_Success(t *testing.T) {
	five := 5
	app := &mockAppService{
		rateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
			assert.Equal(t, "token-1", userToken)
			assert.Equal(t, int64(3), wordID)
			assert.Equal(t, domain.DimensionOverall, dim)
			assert.Equal(t, 5, value)
			return domain.RatingStats{Total: 2, Average: 4.5, UserRating: &five}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := postRate(srv, `{"word_id":3,"rating":5,"rating_type":"overall"}`, "token-1")

	require.Equal(t, http.StatusOK, rec.Code)

	var body rateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rating saved", body.Message)
	assert.Equal(t, 2, body.Stats.Total)
	assert.InDelta(t, 4.5, body.Stats.Average, 0.001)
	require.NotNil(t, body.Stats.UserRating)
	assert.Equal(t, 5, *body.Stats.UserRating)
}

func TestRate_EmptyRatingTypeDefaultsToOverall(t *testing.T) {
	app := &mockAppService{
		rateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
			assert.Equal(t, domain.DimensionOverall, dim)
			return domain.RatingStats{Total: 1, Average: 3}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := postRate(srv, `{"word_id":1,"rating":3}`, "token-1")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRate_InvalidRatingType(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := postRate(srv, `{"word_id":1,"rating":3,"rating_type":"bogus"}`, "token-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRate_InvalidRatingValue(t *testing.T) {
	app := &mockAppService{
		rateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
			return domain.RatingStats{}, domain.ErrInvalidRating
		},
	}
	srv := newTestServer(t, app)

	rec := postRate(srv, `{"word_id":1,"rating":6,"rating_type":"overall"}`, "token-1")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRate_UnknownWord(t *testing.T) {
	app := &mockAppService{
		rateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
			return domain.RatingStats{}, domain.ErrWordNotFound
		},
	}
	srv := newTestServer(t, app)

	rec := postRate(srv, `{"word_id":999,"rating":3,"rating_type":"overall"}`, "token-1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRate_MintsIdentityForAnonymousCaller(t *testing.T) {
	app := &mockAppService{
		rateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
			assert.NotEmpty(t, userToken)
			return domain.RatingStats{Total: 1, Average: 3}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := postRate(srv, `{"word_id":1,"rating":3,"rating_type":"overall"}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, identityCookieName, rec.Result().Cookies()[0].Name)
}

func TestUnrate_Success(t *testing.T) {
	app := &mockAppService{
		unrateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension) (domain.RatingStats, error) {
			assert.Equal(t, "token-1", userToken)
			assert.Equal(t, int64(3), wordID)
			assert.Equal(t, domain.DimensionUsefulness, dim)
			return domain.RatingStats{}, nil
		},
	}
	srv := newTestServer(t, app)

	req := withIdentityCookie(httptest.NewRequest(http.MethodDelete, "/api/rate/3?rating_type=usefulness", nil), "token-1")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body rateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rating removed", body.Message)
	assert.Equal(t, 0, body.Stats.Total)
}

func TestUnrate_NoIdentity(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/rate/3?rating_type=overall", nil)
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnrate_PlaceholderIdentityRejected(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := withIdentityCookie(httptest.NewRequest(http.MethodDelete, "/api/rate/3?rating_type=overall", nil), "None")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUnrate_InvalidRatingTypeIs404(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := withIdentityCookie(httptest.NewRequest(http.MethodDelete, "/api/rate/3?rating_type=bogus", nil), "token-1")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnrate_UnknownWord(t *testing.T) {
	app := &mockAppService{
		unrateFn: func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension) (domain.RatingStats, error) {
			return domain.RatingStats{}, domain.ErrWordNotFound
		},
	}
	srv := newTestServer(t, app)

	req := withIdentityCookie(httptest.NewRequest(http.MethodDelete, "/api/rate/999?rating_type=overall", nil), "token-1")
	rec := doRequest(srv, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRatedWords_Success(t *testing.T) {
	app := &mockAppService{
		ratedWordIDsFn: func(ctx context.Context, userToken string) ([]int64, error) {
			assert.Equal(t, "token-1", userToken)
			return []int64{1, 4, 9}, nil
		},
	}
	srv := newTestServer(t, app)

	req := withIdentityCookie(httptest.NewRequest(http.MethodGet, "/api/rated-words", nil), "token-1")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rated_word_ids":[1,4,9]}`, rec.Body.String())
}

func TestRatedWords_EmptyIsArrayNotNull(t *testing.T) {
	app := &mockAppService{
		ratedWordIDsFn: func(ctx context.Context, userToken string) ([]int64, error) {
			return []int64{}, nil
		},
	}
	srv := newTestServer(t, app)

	req := withIdentityCookie(httptest.NewRequest(http.MethodGet, "/api/rated-words", nil), "token-1")
	rec := doRequest(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rated_word_ids":[]}`, rec.Body.String())
}
