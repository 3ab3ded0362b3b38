package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ForexRepository resolves display conversion rates. Conversion is a display
// nicety: when no rate exists in either direction the resolver degrades to an
// identity rate instead of blocking statement display.
type ForexRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewForexRepository creates a new forex repository.
func NewForexRepository(pool *pgxpool.Pool, log *zap.Logger) *ForexRepository {
	return &ForexRepository{pool: pool, log: log}
}

// GetRate returns the conversion rate from one currency to another as of a
// date. Resolution order: identity for same-currency pairs, latest stored
// rate at or before asOf for the exact pair, reciprocal of the inverse pair,
// and finally 1.0 when neither direction has data. A nil asOf means the
// overall latest rate. Only a query failure returns an error.
func (r *ForexRepository) GetRate(ctx context.Context, from, to string, asOf *time.Time) (float64, error) {
	if from == to {
		return 1.0, nil
	}

	direct, err := r.latestRate(ctx, from, to, asOf)
	if err != nil {
		return 0, err
	}
	inverse := (*decimal.Decimal)(nil)
	if direct == nil {
		inverse, err = r.latestRate(ctx, to, from, asOf)
		if err != nil {
			return 0, err
		}
	}

	rate, ok := resolveRate(direct, inverse)
	if !ok {
		r.log.Debug("no forex rate in either direction, using identity",
			zap.String("from", from), zap.String("to", to))
	}
	return rate, nil
}

// resolveRate applies the fallback chain to the looked-up rates. The second
// return value reports whether any stored rate was used.
func resolveRate(direct, inverse *decimal.Decimal) (float64, bool) {
	if direct != nil {
		return direct.InexactFloat64(), true
	}
	if inverse != nil && !inverse.IsZero() {
		return decimal.NewFromInt(1).Div(*inverse).InexactFloat64(), true
	}
	return 1.0, false
}

func (r *ForexRepository) latestRate(ctx context.Context, from, to string, asOf *time.Time) (*decimal.Decimal, error) {
	var row pgx.Row
	if asOf != nil {
		row = r.pool.QueryRow(ctx, `
			SELECT rate FROM forex_rates
			WHERE from_currency = $1 AND to_currency = $2 AND rate_date <= $3
			ORDER BY rate_date DESC
			LIMIT 1
		`, from, to, *asOf)
	} else {
		row = r.pool.QueryRow(ctx, `
			SELECT rate FROM forex_rates
			WHERE from_currency = $1 AND to_currency = $2
			ORDER BY rate_date DESC
			LIMIT 1
		`, from, to)
	}

	var rate decimal.Decimal
	err := row.Scan(&rate)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying forex rate %s/%s: %w", from, to, err)
	}
	return &rate, nil
}

// ListCurrencies returns the distinct currencies present on either side of a
// stored rate, for the conversion selector.
func (r *ForexRepository) ListCurrencies(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT from_currency FROM forex_rates
		UNION
		SELECT to_currency FROM forex_rates
		ORDER BY 1
	`)
	if err != nil {
		return nil, fmt.Errorf("querying currencies: %w", err)
	}
	defer rows.Close()

	var currencies []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning currency: %w", err)
		}
		currencies = append(currencies, c)
	}
	return currencies, rows.Err()
}
