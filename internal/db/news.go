package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"

	"github.com/coresight-research/coreiq/internal/models"
)

// NewsFilter narrows a news query. Zero values mean unfiltered; all set
// filters apply conjunctively. From/To are compared at day granularity,
// inclusive on both ends.
type NewsFilter struct {
	From   *time.Time
	To     *time.Time
	Sector string
	Ticker string
	Limit  int
}

// NewsRepository fetches news articles and decodes their embedded sentiment
// and topic payloads. One malformed article never breaks a page of valid
// ones: a payload that cannot be decoded reads as an empty list.
type NewsRepository struct {
	pool      *pgxpool.Pool
	companies *CompanyRepository
	log       *zap.Logger
}

// NewNewsRepository creates a new news repository.
func NewNewsRepository(pool *pgxpool.Pool, companies *CompanyRepository, log *zap.Logger) *NewsRepository {
	return &NewsRepository{pool: pool, companies: companies, log: log}
}

// GetArticles returns articles matching the filter, newest first. Sector and
// ticker membership are checked against the decoded per-article sentiment, so
// the limit is applied after those filters.
func (r *NewsRepository) GetArticles(ctx context.Context, filter NewsFilter) ([]models.NewsArticle, error) {
	query := `
		SELECT id, title, summary, url, source, source_domain, banner_image,
		       category_within_source, time_published,
		       overall_sentiment_score, overall_sentiment_label,
		       ticker_sentiment_json, topics_json
		FROM news_articles
	`
	var args []interface{}
	where := ""
	addCond := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		addCond(fmt.Sprintf("time_published::date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		addCond(fmt.Sprintf("time_published::date <= $%d", len(args)))
	}
	query += where + " ORDER BY time_published DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying news articles: %w", err)
	}
	defer rows.Close()

	allowed, err := r.allowedTickers(ctx, filter)
	if err != nil {
		return nil, err
	}

	var articles []models.NewsArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning news article: %w", err)
		}
		if !matchesTickers(article, allowed) {
			continue
		}
		articles = append(articles, article)
		if filter.Limit > 0 && len(articles) >= filter.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading news articles: %w", err)
	}
	return articles, nil
}

// allowedTickers resolves the sector and ticker filters to the set of tickers
// an article must mention. A nil map means no company filter.
func (r *NewsRepository) allowedTickers(ctx context.Context, filter NewsFilter) (map[string]bool, error) {
	if filter.Sector == "" && filter.Ticker == "" {
		return nil, nil
	}

	allowed := make(map[string]bool)
	if filter.Ticker != "" {
		allowed[filter.Ticker] = true
	}
	if filter.Sector != "" {
		tickers, err := r.companies.TickersInSector(ctx, filter.Sector)
		if err != nil {
			return nil, err
		}
		sectorSet := make(map[string]bool, len(tickers))
		for _, t := range tickers {
			sectorSet[t] = true
		}
		if filter.Ticker != "" {
			// Conjunctive: the ticker must also belong to the sector.
			if !sectorSet[filter.Ticker] {
				return map[string]bool{}, nil
			}
		} else {
			allowed = sectorSet
		}
	}
	return allowed, nil
}

func matchesTickers(article models.NewsArticle, allowed map[string]bool) bool {
	if allowed == nil {
		return true
	}
	for _, ts := range article.TickerSentiments {
		if allowed[ts.Ticker] {
			return true
		}
	}
	return false
}

// GetArticle returns one article by id, or nil when it does not exist.
func (r *NewsRepository) GetArticle(ctx context.Context, id int64) (*models.NewsArticle, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, summary, url, source, source_domain, banner_image,
		       category_within_source, time_published,
		       overall_sentiment_score, overall_sentiment_label,
		       ticker_sentiment_json, topics_json
		FROM news_articles
		WHERE id = $1
	`, id)

	article, err := scanArticle(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying news article %d: %w", id, err)
	}
	return &article, nil
}

// GetFeaturedArticles returns the articles with the strongest overall
// sentiment, newest first among equals.
func (r *NewsRepository) GetFeaturedArticles(ctx context.Context, limit int) ([]models.NewsArticle, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, summary, url, source, source_domain, banner_image,
		       category_within_source, time_published,
		       overall_sentiment_score, overall_sentiment_label,
		       ticker_sentiment_json, topics_json
		FROM news_articles
		ORDER BY ABS(COALESCE(overall_sentiment_score, 0)) DESC, time_published DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying featured articles: %w", err)
	}
	defer rows.Close()

	var articles []models.NewsArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning featured article: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// GetSources returns the distinct article sources.
func (r *NewsRepository) GetSources(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT source FROM news_articles
		WHERE source IS NOT NULL AND source <> ''
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("querying news sources: %w", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning news source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}

func scanArticle(row pgx.Row) (models.NewsArticle, error) {
	var a models.NewsArticle
	var summary, url, source, sourceDomain, banner, category, overallLabel *string
	var overallScore *float64
	var sentimentJSON, topicsJSON *string

	err := row.Scan(&a.ID, &a.Title, &summary, &url, &source, &sourceDomain,
		&banner, &category, &a.TimePublished, &overallScore, &overallLabel,
		&sentimentJSON, &topicsJSON)
	if err != nil {
		return models.NewsArticle{}, err
	}

	if summary != nil {
		a.Summary = *summary
	}
	if url != nil {
		a.URL = *url
	}
	if source != nil {
		a.Source = *source
	}
	if sourceDomain != nil {
		a.SourceDomain = *sourceDomain
	}
	if banner != nil {
		a.BannerImage = *banner
	}
	if category != nil {
		a.Category = *category
	}
	if overallScore != nil {
		a.OverallScore = *overallScore
	}
	a.OverallLabel = "Neutral"
	if overallLabel != nil && *overallLabel != "" {
		a.OverallLabel = *overallLabel
	}

	a.TickerSentiments = parseTickerSentiments(stringOrEmpty(sentimentJSON))
	a.Topics = parseTopics(stringOrEmpty(topicsJSON))
	return a, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rawTickerSentiment mirrors the upstream wire shape: numeric fields are
// decimal strings.
type rawTickerSentiment struct {
	Ticker         string `json:"ticker"`
	RelevanceScore string `json:"relevance_score"`
	SentimentScore string `json:"ticker_sentiment_score"`
	SentimentLabel string `json:"ticker_sentiment_label"`
}

type rawTopic struct {
	Topic          string `json:"topic"`
	RelevanceScore string `json:"relevance_score"`
}

// parseTickerSentiments decodes the embedded sentiment list. A payload that
// fails to decode even after a repair attempt yields an empty list; entries
// without a ticker are dropped; bad numeric strings default to 0 and a
// missing label defaults to Neutral.
func parseTickerSentiments(raw string) []models.TickerSentiment {
	var entries []rawTickerSentiment
	if !decodeLenient(raw, &entries) {
		return []models.TickerSentiment{}
	}

	sentiments := make([]models.TickerSentiment, 0, len(entries))
	for _, e := range entries {
		if e.Ticker == "" {
			continue
		}
		label := e.SentimentLabel
		if label == "" {
			label = "Neutral"
		}
		sentiments = append(sentiments, models.TickerSentiment{
			Ticker:         e.Ticker,
			Relevance:      parseScore(e.RelevanceScore),
			SentimentScore: parseScore(e.SentimentScore),
			SentimentLabel: label,
		})
	}
	return sentiments
}

// parseTopics decodes the embedded topic list with the same failure mode as
// parseTickerSentiments.
func parseTopics(raw string) []models.Topic {
	var entries []rawTopic
	if !decodeLenient(raw, &entries) {
		return []models.Topic{}
	}

	topics := make([]models.Topic, 0, len(entries))
	for _, e := range entries {
		if e.Topic == "" {
			continue
		}
		topics = append(topics, models.Topic{
			Topic:     e.Topic,
			Relevance: parseScore(e.RelevanceScore),
		})
	}
	return topics
}

// decodeLenient unmarshals raw into v, trying a JSON repair pass when the
// payload is malformed. Returns false when nothing usable could be decoded.
func decodeLenient(raw string, v interface{}) bool {
	if raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return true
	}
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(repaired), v) == nil
}

func parseScore(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
