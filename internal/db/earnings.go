package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/coresight-research/coreiq/internal/models"
)

// EarningsRepository fetches earnings calls and their transcripts.
type EarningsRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewEarningsRepository creates a new earnings repository.
func NewEarningsRepository(pool *pgxpool.Pool, log *zap.Logger) *EarningsRepository {
	return &EarningsRepository{pool: pool, log: log}
}

// ListCalls returns a ticker's earnings calls, most recent first, without
// transcript bodies. HasTranscript is derived from transcript presence at
// scan time.
func (r *EarningsRepository) ListCalls(ctx context.Context, ticker string) ([]models.EarningsCall, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ticker, year, quarter,
		       (transcript IS NOT NULL AND transcript <> '') AS has_transcript
		FROM earnings_calls
		WHERE ticker = $1
		ORDER BY year DESC, quarter DESC
	`, ticker)
	if err != nil {
		return nil, fmt.Errorf("querying earnings calls for %s: %w", ticker, err)
	}
	defer rows.Close()

	var calls []models.EarningsCall
	for rows.Next() {
		var c models.EarningsCall
		if err := rows.Scan(&c.Ticker, &c.Year, &c.Quarter, &c.HasTranscript); err != nil {
			return nil, fmt.Errorf("scanning earnings call: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// GetCall returns one earnings call with its transcript text, or nil when no
// call exists for the (ticker, year, quarter).
func (r *EarningsRepository) GetCall(ctx context.Context, ticker string, year, quarter int) (*models.EarningsCall, error) {
	var c models.EarningsCall
	var transcript *string
	err := r.pool.QueryRow(ctx, `
		SELECT ticker, year, quarter, transcript
		FROM earnings_calls
		WHERE ticker = $1 AND year = $2 AND quarter = $3
		LIMIT 1
	`, ticker, year, quarter).Scan(&c.Ticker, &c.Year, &c.Quarter, &transcript)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying earnings call %s %dQ%d: %w", ticker, year, quarter, err)
	}

	if transcript != nil {
		c.Transcript = *transcript
	}
	c.HasTranscript = c.Transcript != ""
	return &c, nil
}

// ListYears returns the distinct years with calls for a ticker, descending.
func (r *EarningsRepository) ListYears(ctx context.Context, ticker string) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT year FROM earnings_calls
		WHERE ticker = $1
		ORDER BY year DESC
	`, ticker)
	if err != nil {
		return nil, fmt.Errorf("querying earnings years for %s: %w", ticker, err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scanning year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}
