package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
)

// RatingRepo implements domain.RatingRepository backed by PostgreSQL.
// The UNIQUE (user_token, word_id, rating_type) constraint serializes
// concurrent upserts for the same triple.
type RatingRepo struct {
	pool *pgxpool.Pool
}

func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

func (r *RatingRepo) Upsert(ctx context.Context, userToken string, wordID int64, dim domain.Dimension, value int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO ratings (user_token, word_id, rating_type, rating, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_token, word_id, rating_type) DO UPDATE SET
			rating = EXCLUDED.rating,
			updated_at = NOW()
	`, userToken, wordID, string(dim), value)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}
	return nil
}

func (r *RatingRepo) Delete(ctx context.Context, userToken string, wordID int64, dim domain.Dimension) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM ratings
		WHERE user_token = $1 AND word_id = $2 AND rating_type = $3
	`, userToken, wordID, string(dim))
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}
	return nil
}

func (r *RatingRepo) Stats(ctx context.Context, wordID int64, dim domain.Dimension, userToken string) (domain.RatingStats, error) {
	var stats domain.RatingStats

	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM ratings
		WHERE word_id = $1 AND rating_type = $2
	`, wordID, string(dim)).Scan(&stats.Total, &stats.Average)
	if err != nil {
		return domain.RatingStats{}, fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	if userToken != "" {
		var own int
		err := r.pool.QueryRow(ctx, `
			SELECT rating FROM ratings
			WHERE user_token = $1 AND word_id = $2 AND rating_type = $3
		`, userToken, wordID, string(dim)).Scan(&own)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// user has not rated this pair
		case err != nil:
			return domain.RatingStats{}, fmt.Errorf("failed to read user rating: %w", err)
		default:
			stats.UserRating = &own
		}
	}

	return stats, nil
}

func (r *RatingRepo) ListRatedWordIDs(ctx context.Context, userToken string) ([]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT word_id FROM ratings
		WHERE user_token = $1 AND rating_type = $2
		ORDER BY word_id
	`, userToken, string(domain.DimensionOverall))
	if err != nil {
		return nil, fmt.Errorf("failed to list rated words: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan word id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
