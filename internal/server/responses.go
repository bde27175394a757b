package server

import (
	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
)

// ratingStatsJSON is the wire shape of one dimension's aggregate.
// user_rating is null for anonymous callers and unrated pairs.
type ratingStatsJSON struct {
	Average    float64 `json:"average"`
	Total      int     `json:"total"`
	UserRating *int    `json:"user_rating"`
}

// wordResponse is the wire shape of a word detail.
type wordResponse struct {
	ID               int64                      `json:"id"`
	Word             string                     `json:"word"`
	Definition       string                     `json:"definition"`
	PartOfSpeech     string                     `json:"part_of_speech"`
	Etymology        string                     `json:"etymology"`
	Chapter          string                     `json:"chapter"`
	Concept          string                     `json:"concept"`
	Tags             string                     `json:"tags"`
	ExampleSentences string                     `json:"example_sentences"`
	RatingStats      map[string]ratingStatsJSON `json:"rating_stats"`
}

type leaderboardEntryJSON struct {
	WordID       int64   `json:"word_id"`
	Word         string  `json:"word"`
	Average      float64 `json:"average"`
	TotalRatings int     `json:"total_ratings"`
}

func toRatingStatsJSON(stats domain.RatingStats) ratingStatsJSON {
	return ratingStatsJSON{
		Average:    stats.Average,
		Total:      stats.Total,
		UserRating: stats.UserRating,
	}
}

func toWordResponse(detail *domain.WordDetail) wordResponse {
	stats := make(map[string]ratingStatsJSON, len(detail.Stats))
	for dim, s := range detail.Stats {
		stats[string(dim)] = toRatingStatsJSON(s)
	}

	e := detail.Entry
	return wordResponse{
		ID:               e.ID,
		Word:             e.Word,
		Definition:       e.Definition,
		PartOfSpeech:     e.PartOfSpeech,
		Etymology:        e.Etymology,
		Chapter:          e.Chapter,
		Concept:          e.Concept,
		Tags:             e.Tags,
		ExampleSentences: e.ExampleSentences,
		RatingStats:      stats,
	}
}
