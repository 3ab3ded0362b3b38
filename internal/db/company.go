package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/coresight-research/coreiq/internal/models"
)

// CompanyRepository resolves tickers to display identity and lists the
// selectable companies.
type CompanyRepository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(pool *pgxpool.Pool, log *zap.Logger) *CompanyRepository {
	return &CompanyRepository{pool: pool, log: log}
}

func scanCompany(row pgx.Row) (models.Company, error) {
	var c models.Company
	var nameDisplay, exchange, sector, source *string
	if err := row.Scan(&c.Ticker, &c.Name, &nameDisplay, &exchange, &sector, &source); err != nil {
		return models.Company{}, err
	}
	if nameDisplay != nil {
		c.NameDisplay = *nameDisplay
	}
	if exchange != nil {
		c.Exchange = *exchange
	}
	if sector != nil {
		c.Sector = *sector
	}
	if source != nil {
		c.Source = *source
	}
	return c, nil
}

// GetByTicker returns the company for a ticker, or ErrCompanyNotFound.
func (r *CompanyRepository) GetByTicker(ctx context.Context, ticker string) (models.Company, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT ticker, name, name_display, exchange, sector, source
		FROM companies
		WHERE ticker = $1
		LIMIT 1
	`, ticker)

	c, err := scanCompany(row)
	if err == pgx.ErrNoRows {
		return models.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, ticker)
	}
	if err != nil {
		return models.Company{}, fmt.Errorf("querying company %s: %w", ticker, err)
	}
	return c, nil
}

// ListCompanies returns all selectable companies, ordered by display name.
func (r *CompanyRepository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ticker, name, name_display, exchange, sector, source
		FROM companies
		ORDER BY COALESCE(name_display, name), name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// ListSectors returns the distinct non-null sectors, for the news filter.
func (r *CompanyRepository) ListSectors(ctx context.Context) ([]string, error) {
	return r.listDistinct(ctx, `
		SELECT DISTINCT sector FROM companies
		WHERE sector IS NOT NULL AND sector <> ''
		ORDER BY sector
	`)
}

// ListSources returns the distinct data sources.
func (r *CompanyRepository) ListSources(ctx context.Context) ([]string, error) {
	return r.listDistinct(ctx, `
		SELECT DISTINCT source FROM companies
		WHERE source IS NOT NULL AND source <> ''
		ORDER BY source
	`)
}

// TickersInSector returns the tickers belonging to a sector.
func (r *CompanyRepository) TickersInSector(ctx context.Context, sector string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ticker FROM companies WHERE sector = $1 ORDER BY ticker
	`, sector)
	if err != nil {
		return nil, fmt.Errorf("querying sector tickers: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning ticker: %w", err)
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

func (r *CompanyRepository) listDistinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying distinct values: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
