package app

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/logging"
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/metrics"
)

// Service is the application layer. It orchestrates word lookup, rating
// upkeep, and ranking across the repositories.
type Service struct {
	words   domain.WordRepository
	ratings domain.RatingRepository
	clock   clockwork.Clock

	// rankGroup collapses concurrent leaderboard passes into one.
	rankGroup singleflight.Group

	mu       sync.RWMutex
	loadedAt time.Time
}

// NewService creates the application layer service.
func NewService(words domain.WordRepository, ratings domain.RatingRepository, clock clockwork.Clock) *Service {
	return &Service{
		words:   words,
		ratings: ratings,
		clock:   clock,
	}
}

// GetWord resolves a word by identifier: an all-digit identifier is treated as
// an id first, then as a name; anything else is a name lookup. The returned
// detail carries fresh aggregates for every dimension.
func (s *Service) GetWord(ctx context.Context, identifier, userToken string) (*domain.WordDetail, error) {
	var entry *domain.WordEntry
	var err error

	if id, convErr := strconv.ParseInt(identifier, 10, 64); convErr == nil {
		entry, err = s.words.GetByID(ctx, id)
		if errors.Is(err, domain.ErrWordNotFound) {
			entry, err = s.words.GetByName(ctx, identifier)
		}
	} else {
		entry, err = s.words.GetByName(ctx, identifier)
	}
	if err != nil {
		return nil, err
	}

	return s.detailFor(ctx, entry, userToken)
}

// RandomWord picks a random word the user has not yet rated on the overall
// dimension. When the user has rated everything, any word may come back.
func (s *Service) RandomWord(ctx context.Context, userToken string) (*domain.WordDetail, error) {
	var rated []int64
	if userToken != "" {
		var err error
		rated, err = s.ratings.ListRatedWordIDs(ctx, userToken)
		if err != nil {
			return nil, err
		}
	}

	entry, err := s.words.RandomExcluding(ctx, rated)
	if err != nil {
		return nil, err
	}

	return s.detailFor(ctx, entry, userToken)
}

// Rate records or replaces the user's rating and returns the fresh aggregate
// for the rated dimension.
func (s *Service) Rate(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) (domain.RatingStats, error) {
	if err := domain.ValidateRating(value); err != nil {
		return domain.RatingStats{}, err
	}

	// Word must exist before touching the ledger
	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		return domain.RatingStats{}, err
	}

	if err := s.ratings.Upsert(ctx, userToken, wordID, dim, value); err != nil {
		return domain.RatingStats{}, err
	}

	metrics.RatingsSubmitted.WithLabelValues(string(dim)).Inc()
	logging.WithUser(userToken).Info("rating saved", "word_id", wordID, "dimension", string(dim), "rating", value)

	return s.statsFor(ctx, wordID, dim, userToken)
}

// Unrate removes the user's rating, if any, and returns the fresh aggregate.
// Removing an absent rating succeeds.
func (s *Service) Unrate(ctx context.Context, userToken string, wordID int64, dim domain.Dimension) (domain.RatingStats, error) {
	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		return domain.RatingStats{}, err
	}

	if err := s.ratings.Delete(ctx, userToken, wordID, dim); err != nil {
		return domain.RatingStats{}, err
	}

	metrics.RatingsRemoved.WithLabelValues(string(dim)).Inc()
	logging.WithUser(userToken).Info("rating removed", "word_id", wordID, "dimension", string(dim))

	return s.statsFor(ctx, wordID, dim, userToken)
}

// NextWordID returns the id following current in id order, wrapping to the
// first word past the end.
func (s *Service) NextWordID(ctx context.Context, current int64) (int64, error) {
	return s.words.NextID(ctx, current)
}

// PrevWordID returns the id preceding current in id order, wrapping to the
// last word before the start.
func (s *Service) PrevWordID(ctx context.Context, current int64) (int64, error) {
	return s.words.PrevID(ctx, current)
}

// RatedWordIDs lists the ids the user has rated on the overall dimension.
func (s *Service) RatedWordIDs(ctx context.Context, userToken string) ([]int64, error) {
	ids, err := s.ratings.ListRatedWordIDs(ctx, userToken)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

// Leaderboard ranks every word by its overall aggregate: average descending,
// then rating count descending, then id ascending. Words with no ratings are
// included with a zero aggregate. Concurrent calls share one ranking pass.
func (s *Service) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	v, err, _ := s.rankGroup.Do("leaderboard", func() (any, error) {
		return s.computeLeaderboard(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.LeaderboardEntry), nil
}

func (s *Service) computeLeaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	start := s.clock.Now()
	defer func() {
		metrics.LeaderboardDuration.Observe(s.clock.Since(start).Seconds())
	}()

	words, err := s.words.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	board := make([]domain.LeaderboardEntry, 0, len(words))
	for _, w := range words {
		stats, err := s.ratings.Stats(ctx, w.ID, domain.DimensionOverall, "")
		if err != nil {
			return nil, err
		}
		board = append(board, domain.LeaderboardEntry{
			WordID:       w.ID,
			Word:         w.Word,
			Average:      round1(stats.Average),
			TotalRatings: stats.Total,
		})
	}

	sort.SliceStable(board, func(i, j int) bool {
		if board[i].Average != board[j].Average {
			return board[i].Average > board[j].Average
		}
		if board[i].TotalRatings != board[j].TotalRatings {
			return board[i].TotalRatings > board[j].TotalRatings
		}
		return board[i].WordID < board[j].WordID
	})

	return board, nil
}

// ReloadCatalog upserts the source entries into the word store and returns
// the number of entries processed.
func (s *Service) ReloadCatalog(ctx context.Context, entries []domain.SourceEntry) (int, error) {
	n, err := s.words.Reload(ctx, entries)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.loadedAt = s.clock.Now()
	s.mu.Unlock()

	count, err := s.words.Count(ctx)
	if err != nil {
		return n, err
	}
	metrics.CatalogWords.Set(float64(count))

	return n, nil
}

// CatalogReady reports whether the word store holds at least one entry.
func (s *Service) CatalogReady(ctx context.Context) error {
	count, err := s.words.Count(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrEmptyCatalog
	}
	return nil
}

// LoadedAt reports when the catalog was last reloaded. Zero before any reload.
func (s *Service) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Service) detailFor(ctx context.Context, entry *domain.WordEntry, userToken string) (*domain.WordDetail, error) {
	detail := &domain.WordDetail{
		Entry: *entry,
		Stats: make(map[domain.Dimension]domain.RatingStats, len(domain.AllDimensions)),
	}
	for _, dim := range domain.AllDimensions {
		stats, err := s.statsFor(ctx, entry.ID, dim, userToken)
		if err != nil {
			return nil, err
		}
		detail.Stats[dim] = stats
	}
	return detail, nil
}

func (s *Service) statsFor(ctx context.Context, wordID int64, dim domain.Dimension, userToken string) (domain.RatingStats, error) {
	stats, err := s.ratings.Stats(ctx, wordID, dim, userToken)
	if err != nil {
		return domain.RatingStats{}, err
	}
	stats.Average = round1(stats.Average)
	return stats, nil
}

// round1 rounds to one decimal place for presentation.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
