package domain

import "context"

// --- Model types ---

// WordEntry is one dictionary entry. IDs are durable: a catalog reload matches
// incoming entries by word name and never reassigns an existing id.
type WordEntry struct {
	ID               int64
	Word             string
	Definition       string
	PartOfSpeech     string
	Etymology        string
	Chapter          string
	Concept          string
	Tags             string
	ExampleSentences string
}

// SourceEntry is one record of the catalog export the word store is loaded
// from. The JSON keys match the upstream dictionary export format.
type SourceEntry struct {
	Word             string `json:"Word"`
	Definition       string `json:"Definition"`
	PartOfSpeech     string `json:"Part of Speech"`
	Etymology        string `json:"Etymology"`
	Chapter          string `json:"Chapter"`
	Concept          string `json:"Concept"`
	Tags             string `json:"Tags"`
	ExampleSentences string `json:"Example Sentences"`
}

// RatingStats is the derived aggregate for one (word, dimension) pair.
// It is computed fresh from the ledger on every read, never cached.
// UserRating is nil when no requesting user was supplied or the user has not
// rated the pair.
type RatingStats struct {
	Total      int
	Average    float64
	UserRating *int
}

// WordDetail is a word entry together with the aggregate for every dimension.
type WordDetail struct {
	Entry WordEntry
	Stats map[Dimension]RatingStats
}

// LeaderboardEntry is one row of the global ranking.
type LeaderboardEntry struct {
	WordID       int64
	Word         string
	Average      float64
	TotalRatings int
}

// --- Interfaces ---

// WordRepository abstracts word catalog persistence.
type WordRepository interface {
	GetByID(ctx context.Context, id int64) (*WordEntry, error)
	GetByName(ctx context.Context, name string) (*WordEntry, error)
	ListAll(ctx context.Context) ([]WordEntry, error)
	Count(ctx context.Context) (int, error)
	// Reload upserts every source entry by word name in a single transaction.
	// Existing entries keep their id; entries missing from the source are kept.
	Reload(ctx context.Context, entries []SourceEntry) (int, error)
	NextID(ctx context.Context, current int64) (int64, error)
	PrevID(ctx context.Context, current int64) (int64, error)
	// RandomExcluding returns a uniformly random entry whose id is not in
	// excluded, falling back to the full catalog when everything is excluded.
	RandomExcluding(ctx context.Context, excluded []int64) (*WordEntry, error)
}

// RatingRepository abstracts the rating ledger. At most one record exists per
// (user, word, dimension) triple; Upsert overwrites in place.
type RatingRepository interface {
	Upsert(ctx context.Context, userToken string, wordID int64, dim Dimension, value int) error
	// Delete removes the record for the triple. Deleting an absent record is
	// a no-op, not an error.
	Delete(ctx context.Context, userToken string, wordID int64, dim Dimension) error
	// Stats computes the aggregate for (wordID, dim). When userToken is
	// non-empty the caller's own rating is included.
	Stats(ctx context.Context, wordID int64, dim Dimension, userToken string) (RatingStats, error)
	// ListRatedWordIDs returns the ids the user has an 'overall' rating for.
	ListRatedWordIDs(ctx context.Context, userToken string) ([]int64, error)
}

// AppService is the application layer contract. Handlers route all
// operations through here.
type AppService interface {
	GetWord(ctx context.Context, identifier, userToken string) (*WordDetail, error)
	RandomWord(ctx context.Context, userToken string) (*WordDetail, error)
	Rate(ctx context.Context, userToken string, wordID int64, dim Dimension, value int) (RatingStats, error)
	Unrate(ctx context.Context, userToken string, wordID int64, dim Dimension) (RatingStats, error)
	NextWordID(ctx context.Context, current int64) (int64, error)
	PrevWordID(ctx context.Context, current int64) (int64, error)
	RatedWordIDs(ctx context.Context, userToken string) ([]int64, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	ReloadCatalog(ctx context.Context, entries []SourceEntry) (int, error)
	CatalogReady(ctx context.Context) error
}
