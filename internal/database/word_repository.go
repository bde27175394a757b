package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/WolfDWyc/obscure-sorrows-browser/internal/domain"
)

// wordColumns must match the Scan order in scanWord.
const wordColumns = `id, word, definition, part_of_speech, etymology, chapter, concept, tags, example_sentences`

// WordRepo implements domain.WordRepository backed by PostgreSQL.
type WordRepo struct {
	pool *pgxpool.Pool
}

func NewWordRepo(pool *pgxpool.Pool) *WordRepo {
	return &WordRepo{pool: pool}
}

func scanWord(row pgx.Row) (*domain.WordEntry, error) {
	var w domain.WordEntry
	err := row.Scan(
		&w.ID, &w.Word, &w.Definition, &w.PartOfSpeech,
		&w.Etymology, &w.Chapter, &w.Concept, &w.Tags, &w.ExampleSentences,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WordRepo) GetByID(ctx context.Context, id int64) (*domain.WordEntry, error) {
	return scanWord(r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE id = $1`, id))
}

func (r *WordRepo) GetByName(ctx context.Context, name string) (*domain.WordEntry, error) {
	return scanWord(r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE word = $1`, name))
}

func (r *WordRepo) ListAll(ctx context.Context) ([]domain.WordEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+wordColumns+` FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer rows.Close()

	var words []domain.WordEntry
	for rows.Next() {
		var w domain.WordEntry
		if err := rows.Scan(
			&w.ID, &w.Word, &w.Definition, &w.PartOfSpeech,
			&w.Etymology, &w.Chapter, &w.Concept, &w.Tags, &w.ExampleSentences,
		); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (r *WordRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM words`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

// Reload upserts every source entry by word name inside one transaction.
// Existing entries keep their id, so ratings referencing it survive a catalog
// refresh. Entries absent from the source are deliberately left in place.
func (r *WordRepo) Reload(ctx context.Context, entries []domain.SourceEntry) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO words (word, definition, part_of_speech, etymology, chapter, concept, tags, example_sentences, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			ON CONFLICT (word) DO UPDATE SET
				definition = EXCLUDED.definition,
				part_of_speech = EXCLUDED.part_of_speech,
				etymology = EXCLUDED.etymology,
				chapter = EXCLUDED.chapter,
				concept = EXCLUDED.concept,
				tags = EXCLUDED.tags,
				example_sentences = EXCLUDED.example_sentences,
				updated_at = NOW()
		`, e.Word, e.Definition, e.PartOfSpeech, e.Etymology, e.Chapter, e.Concept, e.Tags, e.ExampleSentences)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert word %q: %w", e.Word, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(entries), nil
}

func (r *WordRepo) NextID(ctx context.Context, current int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM words WHERE id > $1 ORDER BY id LIMIT 1`, current).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Wrap around to the first word
		err = r.pool.QueryRow(ctx, `SELECT id FROM words ORDER BY id LIMIT 1`).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrEmptyCatalog
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get next word id: %w", err)
	}
	return id, nil
}

func (r *WordRepo) PrevID(ctx context.Context, current int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM words WHERE id < $1 ORDER BY id DESC LIMIT 1`, current).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Wrap around to the last word
		err = r.pool.QueryRow(ctx, `SELECT id FROM words ORDER BY id DESC LIMIT 1`).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrEmptyCatalog
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get previous word id: %w", err)
	}
	return id, nil
}

func (r *WordRepo) RandomExcluding(ctx context.Context, excluded []int64) (*domain.WordEntry, error) {
	if excluded == nil {
		excluded = []int64{}
	}

	word, err := scanWord(r.pool.QueryRow(ctx,
		`SELECT `+wordColumns+` FROM words WHERE NOT (id = ANY($1)) ORDER BY random() LIMIT 1`, excluded))
	if errors.Is(err, domain.ErrWordNotFound) {
		// Everything rated: fall back to the full catalog
		word, err = scanWord(r.pool.QueryRow(ctx,
			`SELECT `+wordColumns+` FROM words ORDER BY random() LIMIT 1`))
		if errors.Is(err, domain.ErrWordNotFound) {
			return nil, domain.ErrEmptyCatalog
		}
	}
	if err != nil {
		return nil, err
	}
	return word, nil
}
