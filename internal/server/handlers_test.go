package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/config"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
	apperrors "github.com/WolfDWyc/obscure-sorrows-browser/internal/errors"
)

// --- Mock implementations ---

type mockAppService struct {
	getWordFn       func(ctx context.Context, identifier, userToken string) (*domain.WordDetail, error)
	randomWordFn    func(ctx context.Context, userToken string) (*domain.WordDetail, error)
	rateFn          func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error)
	unrateFn        func(ctx context.Context, userToken string, wordID int64, dim domain.Dimension) (domain.RatingStats, error)
	nextWordIDFn    func(ctx context.Context, current int64) (int64, error)
	prevWordIDFn    func(ctx context.Context, current int64) (int64, error)
	ratedWordIDsFn  func(ctx context.Context, userToken string) ([]int64, error)
	leaderboardFn   func(ctx context.Context) ([]domain.LeaderboardEntry, error)
	reloadCatalogFn func(ctx context.Context, entries []domain.SourceEntry) (int, error)
	catalogReadyFn  func(ctx context.Context) error
}

func (m *mockAppService) GetWord(ctx context.Context, identifier, userToken string) (*domain.WordDetail, error) {
	if m.getWordFn != nil {
		return m.getWordFn(ctx, identifier, userToken)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) RandomWord(ctx context.Context, userToken string) (*domain.WordDetail, error) {
	if m.randomWordFn != nil {
		return m.randomWordFn(ctx, userToken)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) Rate(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
	if m.rateFn != nil {
		return m.rateFn(ctx, userToken, wordID, dim, value)
	}
	return domain.RatingStats{}, fmt.Errorf("not implemented")
}

func (m *mockAppService) Unrate(ctx context.Context, userToken string, wordID int64, dim domain.Dimension) (domain.RatingStats, error) {
	if m.unrateFn != nil {
		return m.unrateFn(ctx, userToken, wordID, dim)
	}
	return domain.RatingStats{}, fmt.Errorf("not implemented")
}

func (m *mockAppService) NextWordID(ctx context.Context, current int64) (int64, error) {
	if m.nextWordIDFn != nil {
		return m.nextWordIDFn(ctx, current)
	}
	return 0, fmt.Errorf("not implemented")
}

func (m *mockAppService) PrevWordID(ctx context.Context, current int64) (int64, error) {
	if m.prevWordIDFn != nil {
		return m.prevWordIDFn(ctx, current)
	}
	return 0, fmt.Errorf("not implemented")
}

func (m *mockAppService) RatedWordIDs(ctx context.Context, userToken string) ([]int64, error) {
	if m.ratedWordIDsFn != nil {
		return m.ratedWordIDsFn(ctx, userToken)
	}
	return []int64{}, nil
}

func (m *mockAppService) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	if m.leaderboardFn != nil {
		return m.leaderboardFn(ctx)
	}
	return []domain.LeaderboardEntry{}, nil
}

func (m *mockAppService) ReloadCatalog(ctx context.Context, entries []domain.SourceEntry) (int, error) {
	if m.reloadCatalogFn != nil {
		return m.reloadCatalogFn(ctx, entries)
	}
	return 0, fmt.Errorf("not implemented")
}

func (m *mockAppService) CatalogReady(ctx context.Context) error {
	if m.catalogReadyFn != nil {
		return m.catalogReadyFn(ctx)
	}
	return nil
}

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(_ context.Context) error {
	return m.err
}

// --- Test helpers ---

func newTestServer(t *testing.T, app domain.AppService, opts ...func(*Server)) *Server {
	t.Helper()

	e := echo.New()
	// Install error middleware for tests to match production behavior
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    &config.Config{AppEnv: "test", Port: "8080"},
		app:       app,
		db:        &mockHealthChecker{},
		startTime: time.Now(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withHealthChecker(db postgresHealthChecker) func(*Server) {
	return func(s *Server) {
		s.db = db
	}
}

func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func withIdentityCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: identityCookieName, Value: token})
	return req
}

func sampleDetail() *domain.WordDetail {
	four := 4
	return &domain.WordDetail{
		Entry: domain.WordEntry{
			ID:         1,
			Word:       "sonder",
			Definition: "the realization that each passerby has a life as vivid as your own",
			Chapter:    "Chapter One",
		},
		Stats: map[domain.Dimension]domain.RatingStats{
			domain.DimensionOverall:      {Total: 3, Average: 4.3, UserRating: &four},
			domain.DimensionRelatability: {},
			domain.DimensionUsefulness:   {},
			domain.DimensionName:         {},
		},
	}
}
