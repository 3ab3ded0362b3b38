package db

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coresight-research/coreiq/internal/models"
)

// StatementRepository normalizes the three statement fact tables into
// StatementData aggregates. Income statement values live in typed columns;
// balance sheet and cash flow values live in a per-row semi-structured
// payload. Values are returned in millions of the reported currency; display
// currency conversion is the caller's job via ForexRepository.
type StatementRepository struct {
	pool      *pgxpool.Pool
	companies *CompanyRepository
	log       *zap.Logger
}

// NewStatementRepository creates a new statement repository.
func NewStatementRepository(pool *pgxpool.Pool, companies *CompanyRepository, log *zap.Logger) *StatementRepository {
	return &StatementRepository{pool: pool, companies: companies, log: log}
}

// valueSource resolves a schema key to a raw (unscaled) value, nil when the
// source field is absent or unusable.
type valueSource interface {
	Number(key string) *decimal.Decimal
}

// columnValues adapts a flat column row to the valueSource lookup.
type columnValues map[string]*decimal.Decimal

func (c columnValues) Number(key string) *decimal.Decimal { return c[key] }

// statementRow is one annual fact row after the typed decoding step at the
// query boundary.
type statementRow struct {
	fiscalDate time.Time
	values     valueSource
}

// GetIncomeStatement returns the normalized income statement for a ticker
// over an inclusive fiscal date range.
func (r *StatementRepository) GetIncomeStatement(ctx context.Context, ticker string, start, end time.Time) (*models.StatementData, error) {
	company, err := r.companies.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("invalid date range: %s after %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	rows, err := r.fetchIncomeRows(ctx, ticker, start, end)
	if err != nil {
		return nil, err
	}
	return assembleStatement(models.StatementIncome, company, rows), nil
}

// GetBalanceSheet returns the normalized balance sheet for a ticker over an
// inclusive fiscal date range.
func (r *StatementRepository) GetBalanceSheet(ctx context.Context, ticker string, start, end time.Time) (*models.StatementData, error) {
	return r.getPayloadStatement(ctx, models.StatementBalance, "balance_sheets", ticker, start, end)
}

// GetCashFlow returns the normalized cash flow statement for a ticker over an
// inclusive fiscal date range.
func (r *StatementRepository) GetCashFlow(ctx context.Context, ticker string, start, end time.Time) (*models.StatementData, error) {
	return r.getPayloadStatement(ctx, models.StatementCashFlow, "cash_flows", ticker, start, end)
}

func (r *StatementRepository) getPayloadStatement(ctx context.Context, st models.StatementType, table, ticker string, start, end time.Time) (*models.StatementData, error) {
	company, err := r.companies.GetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, fmt.Errorf("invalid date range: %s after %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	query := fmt.Sprintf(`
		SELECT fiscal_date_ending, raw_json
		FROM %s
		WHERE ticker = $1
		  AND fiscal_date_ending BETWEEN $2 AND $3
		  AND report_type = 'annual'
		ORDER BY fiscal_date_ending ASC
	`, table)

	pgRows, err := r.pool.Query(ctx, query, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying %s for %s: %w", table, ticker, err)
	}
	defer pgRows.Close()

	var rows []statementRow
	for pgRows.Next() {
		var fiscalDate time.Time
		var raw []byte
		if err := pgRows.Scan(&fiscalDate, &raw); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		rows = append(rows, statementRow{
			fiscalDate: fiscalDate,
			values:     parseStatementDoc(raw),
		})
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s rows: %w", table, err)
	}

	return assembleStatement(st, company, rows), nil
}

// incomeValueColumns lists the typed value columns of income_statements, in
// scan order. Keys match the income line item schema table.
var incomeValueColumns = []string{
	"total_revenue",
	"cost_of_revenue",
	"gross_profit",
	"selling_general_and_administrative",
	"research_and_development",
	"depreciation_and_amortization",
	"other_non_operating_income",
	"operating_expenses",
	"operating_income",
	"interest_expense",
	"interest_income",
	"net_interest_income",
	"income_before_tax",
	"income_tax_expense",
	"net_income",
	"ebit",
	"ebitda",
}

func (r *StatementRepository) fetchIncomeRows(ctx context.Context, ticker string, start, end time.Time) ([]statementRow, error) {
	query := "SELECT fiscal_date_ending"
	for _, col := range incomeValueColumns {
		query += ", " + col
	}
	query += `
		FROM income_statements
		WHERE ticker = $1
		  AND fiscal_date_ending BETWEEN $2 AND $3
		  AND report_type = 'annual'
		ORDER BY fiscal_date_ending ASC
	`

	pgRows, err := r.pool.Query(ctx, query, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying income statements for %s: %w", ticker, err)
	}
	defer pgRows.Close()

	var rows []statementRow
	for pgRows.Next() {
		var fiscalDate time.Time
		values := make([]*decimal.Decimal, len(incomeValueColumns))
		dest := make([]interface{}, 0, len(incomeValueColumns)+1)
		dest = append(dest, &fiscalDate)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := pgRows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning income statement row: %w", err)
		}

		cols := make(columnValues, len(incomeValueColumns))
		for i, col := range incomeValueColumns {
			cols[col] = values[i]
		}
		rows = append(rows, statementRow{fiscalDate: fiscalDate, values: cols})
	}
	if err := pgRows.Err(); err != nil {
		return nil, fmt.Errorf("reading income statement rows: %w", err)
	}

	return rows, nil
}

// assembleStatement builds the label-by-period matrix from decoded fact rows:
// rows are deduplicated by fiscal date (first wins) and ordered ascending,
// values are scaled to millions, and line items with no data in any period
// are pruned. No rows yields an empty but valid aggregate.
func assembleStatement(st models.StatementType, company models.Company, rows []statementRow) *models.StatementData {
	rows = dedupeRows(rows)

	periods := make([]models.FiscalPeriod, 0, len(rows))
	for _, row := range rows {
		periods = append(periods, models.NewFiscalPeriod(row.fiscalDate))
	}

	specs := lineItemSpecs(st)
	lineItems := make([]models.LineItem, 0, len(specs))
	for _, spec := range specs {
		values := make([]*decimal.Decimal, 0, len(rows))
		for _, row := range rows {
			values = append(values, millions(row.values, spec.Key))
		}
		item := models.LineItem{LineItemSpec: spec, Values: values}
		if !item.HasData() {
			continue
		}
		lineItems = append(lineItems, item)
	}

	return &models.StatementData{
		Type:      st,
		Company:   company,
		Periods:   periods,
		LineItems: lineItems,
	}
}

// millions resolves a schema key and scales the raw value to millions of the
// reported currency. Derived rows (empty key) and absent fields stay nil.
func millions(src valueSource, key string) *decimal.Decimal {
	if key == "" {
		return nil
	}
	v := src.Number(key)
	if v == nil {
		return nil
	}
	scaled := v.Shift(-6)
	return &scaled
}

// dedupeRows sorts rows ascending by fiscal date and keeps the first row per
// date.
func dedupeRows(rows []statementRow) []statementRow {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].fiscalDate.Before(rows[j].fiscalDate)
	})

	out := rows[:0]
	var last time.Time
	for _, row := range rows {
		if len(out) > 0 && row.fiscalDate.Equal(last) {
			continue
		}
		out = append(out, row)
		last = row.fiscalDate
	}
	return out
}

// GetReportedCurrency returns the currency the company reported in for one
// fiscal period, defaulting to USD when unknown. This is display metadata,
// not the conversion target currency.
func (r *StatementRepository) GetReportedCurrency(ctx context.Context, ticker string, fiscalDate time.Time) (string, error) {
	var currency *string
	err := r.pool.QueryRow(ctx, `
		SELECT reported_currency
		FROM income_statements
		WHERE ticker = $1 AND fiscal_date_ending = $2
		LIMIT 1
	`, ticker, fiscalDate).Scan(&currency)
	if err == pgx.ErrNoRows {
		return "USD", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying reported currency for %s: %w", ticker, err)
	}
	if currency == nil || *currency == "" {
		return "USD", nil
	}
	return *currency, nil
}

// GetDateRange returns the min and max annual fiscal dates for a ticker, or
// nils when the ticker has no data.
func (r *StatementRepository) GetDateRange(ctx context.Context, ticker string) (*time.Time, *time.Time, error) {
	var minDate, maxDate *time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT MIN(fiscal_date_ending), MAX(fiscal_date_ending)
		FROM income_statements
		WHERE ticker = $1 AND report_type = 'annual'
	`, ticker).Scan(&minDate, &maxDate)
	if err != nil {
		return nil, nil, fmt.Errorf("querying date range for %s: %w", ticker, err)
	}
	return minDate, maxDate, nil
}

// GetAvailableDates returns the distinct annual fiscal dates for a ticker,
// ascending, for the period selectors.
func (r *StatementRepository) GetAvailableDates(ctx context.Context, ticker string) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT fiscal_date_ending
		FROM income_statements
		WHERE ticker = $1 AND report_type = 'annual'
		ORDER BY fiscal_date_ending ASC
	`, ticker)
	if err != nil {
		return nil, fmt.Errorf("querying available dates for %s: %w", ticker, err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning fiscal date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}
