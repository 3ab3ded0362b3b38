package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Company is a row from the companies table. Ticker is the stable identity;
// DisplayName prefers the curated name override when present.
type Company struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	NameDisplay string `json:"name_display,omitempty"`
	Exchange    string `json:"exchange,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Source      string `json:"source,omitempty"`
}

// DisplayName returns the curated name when set, the legal name otherwise.
func (c Company) DisplayName() string {
	if c.NameDisplay != "" {
		return c.NameDisplay
	}
	return c.Name
}

// Label formats the company for selectors: "Macy's Inc. (NYSE:M)".
func (c Company) Label() string {
	return fmt.Sprintf("%s (%s:%s)", c.DisplayName(), c.Exchange, c.Ticker)
}

// FiscalPeriod is one column of a statement table: the period end date plus
// the display label.
type FiscalPeriod struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// NewFiscalPeriod builds the annual period for a fiscal end date, labeled
// "12 Months\nJan-29-2021".
func NewFiscalPeriod(date time.Time) FiscalPeriod {
	return FiscalPeriod{
		Date:  date,
		Label: "12 Months\n" + date.Format("Jan-02-2006"),
	}
}

// StatementType tags a StatementData with its source statement.
type StatementType string

const (
	StatementIncome   StatementType = "income_statement"
	StatementBalance  StatementType = "balance_sheet"
	StatementCashFlow StatementType = "cash_flow"
)

// Section groups line items for display indentation. The set of sections
// depends on the statement type.
type Section string

const (
	SectionRevenue      Section = "revenue"
	SectionOperating    Section = "operating"
	SectionNonOperating Section = "nonoperating"
	SectionSummary      Section = "summary"
	SectionAssets       Section = "assets"
	SectionLiabilities  Section = "liabilities"
	SectionEquity       Section = "equity"
	SectionInvesting    Section = "investing"
	SectionFinancing    Section = "financing"
)

// LineItemSpec is one row of the static per-statement schema table. Order of
// declaration defines display order, including where subtotals sit relative
// to their components.
type LineItemSpec struct {
	Label        string  `json:"label"`
	Key          string  `json:"key"`
	IsCalculated bool    `json:"is_calculated"`
	Section      Section `json:"section"`
}

// LineItem binds a spec to one value per fiscal period, in millions of the
// reported currency. A nil value means the source field was absent, which is
// distinct from zero.
type LineItem struct {
	LineItemSpec
	Values []*decimal.Decimal `json:"values"`
}

// HasData reports whether any period carries a value.
func (li LineItem) HasData() bool {
	for _, v := range li.Values {
		if v != nil {
			return true
		}
	}
	return false
}

// StatementData is the normalized label-by-period matrix for one company and
// statement type. Line items whose values are absent across every period are
// pruned before assembly. Empty Periods/LineItems is a valid result for a
// range with no rows.
type StatementData struct {
	Type      StatementType  `json:"type"`
	Company   Company        `json:"company"`
	Periods   []FiscalPeriod `json:"periods"`
	LineItems []LineItem     `json:"line_items"`
}

// TickerSentiment is one company's relevance/sentiment attached to a news
// article. Scores arrive as decimal strings and are parsed defensively.
type TickerSentiment struct {
	Ticker         string  `json:"ticker"`
	Relevance      float64 `json:"relevance_score"`
	SentimentScore float64 `json:"ticker_sentiment_score"`
	SentimentLabel string  `json:"ticker_sentiment_label"`
}

// Topic is a tagged topic on a news article with its relevance.
type Topic struct {
	Topic     string  `json:"topic"`
	Relevance float64 `json:"relevance_score"`
}

// NewsArticle is a row from the news sentiment table with its embedded
// per-ticker sentiment and topic tags decoded.
type NewsArticle struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Summary          string            `json:"summary"`
	URL              string            `json:"url"`
	Source           string            `json:"source"`
	SourceDomain     string            `json:"source_domain"`
	BannerImage      string            `json:"banner_image,omitempty"`
	Category         string            `json:"category_within_source,omitempty"`
	TimePublished    time.Time         `json:"time_published"`
	OverallScore     float64           `json:"overall_sentiment_score"`
	OverallLabel     string            `json:"overall_sentiment_label"`
	TickerSentiments []TickerSentiment `json:"ticker_sentiment"`
	Topics           []Topic           `json:"topics"`
}

// FormattedDate renders the publication date as "January 21, 2026".
func (a NewsArticle) FormattedDate() string {
	return a.TimePublished.Format("January 2, 2006")
}

// CompanyTickers lists the tickers mentioned in the article's sentiment data.
func (a NewsArticle) CompanyTickers() []string {
	tickers := make([]string, 0, len(a.TickerSentiments))
	for _, ts := range a.TickerSentiments {
		tickers = append(tickers, ts.Ticker)
	}
	return tickers
}

// EarningsCall identifies one quarterly call. HasTranscript is derived when
// the row is scanned, not inferred from text length downstream.
type EarningsCall struct {
	Ticker        string `json:"ticker"`
	Year          int    `json:"year"`
	Quarter       int    `json:"quarter"`
	Transcript    string `json:"transcript,omitempty"`
	HasTranscript bool   `json:"has_transcript"`
}

// SpeakerSegment is one speaker's contiguous utterance in a transcript.
// Segments are recomputed on every render and never persisted.
type SpeakerSegment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// ForexRate is a row from the forex rates table.
type ForexRate struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	RateDate     time.Time       `json:"rate_date"`
}
