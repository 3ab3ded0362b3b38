package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresight-research/coreiq/internal/models"
)

func TestParseTickerSentiments(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		raw := `[
			{"ticker": "M", "relevance_score": "0.82", "ticker_sentiment_score": "0.15", "ticker_sentiment_label": "Somewhat-Bullish"},
			{"ticker": "JWN", "relevance_score": "0.31", "ticker_sentiment_score": "-0.05", "ticker_sentiment_label": "Neutral"}
		]`
		sentiments := parseTickerSentiments(raw)
		require.Len(t, sentiments, 2)
		assert.Equal(t, "M", sentiments[0].Ticker)
		assert.InDelta(t, 0.82, sentiments[0].Relevance, 1e-9)
		assert.InDelta(t, 0.15, sentiments[0].SentimentScore, 1e-9)
		assert.Equal(t, "Somewhat-Bullish", sentiments[0].SentimentLabel)
		assert.InDelta(t, -0.05, sentiments[1].SentimentScore, 1e-9)
	})

	t.Run("malformed payload yields empty list", func(t *testing.T) {
		sentiments := parseTickerSentiments(`{not json`)
		assert.Equal(t, []models.TickerSentiment{}, sentiments)
	})

	t.Run("empty payload yields empty list", func(t *testing.T) {
		assert.Equal(t, []models.TickerSentiment{}, parseTickerSentiments(""))
	})

	t.Run("repairable payload is recovered", func(t *testing.T) {
		// Trailing comma, single quotes: decodable after a repair pass.
		raw := `[{'ticker': 'ANF', 'relevance_score': '0.5',}]`
		sentiments := parseTickerSentiments(raw)
		require.Len(t, sentiments, 1)
		assert.Equal(t, "ANF", sentiments[0].Ticker)
	})

	t.Run("bad numeric strings default to zero", func(t *testing.T) {
		raw := `[{"ticker": "KSS", "relevance_score": "high", "ticker_sentiment_score": ""}]`
		sentiments := parseTickerSentiments(raw)
		require.Len(t, sentiments, 1)
		assert.Zero(t, sentiments[0].Relevance)
		assert.Zero(t, sentiments[0].SentimentScore)
	})

	t.Run("missing label defaults to Neutral", func(t *testing.T) {
		sentiments := parseTickerSentiments(`[{"ticker": "DDS"}]`)
		require.Len(t, sentiments, 1)
		assert.Equal(t, "Neutral", sentiments[0].SentimentLabel)
	})

	t.Run("entries without a ticker dropped", func(t *testing.T) {
		raw := `[{"relevance_score": "0.9"}, {"ticker": "M"}]`
		sentiments := parseTickerSentiments(raw)
		require.Len(t, sentiments, 1)
		assert.Equal(t, "M", sentiments[0].Ticker)
	})
}

func TestParseTopics(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		topics := parseTopics(`[{"topic": "Retail & Wholesale", "relevance_score": "0.6"}]`)
		require.Len(t, topics, 1)
		assert.Equal(t, "Retail & Wholesale", topics[0].Topic)
		assert.InDelta(t, 0.6, topics[0].Relevance, 1e-9)
	})

	t.Run("malformed payload yields empty list", func(t *testing.T) {
		assert.Equal(t, []models.Topic{}, parseTopics(`[{"topic": `))
	})
}

func TestMatchesTickers(t *testing.T) {
	article := models.NewsArticle{
		TickerSentiments: []models.TickerSentiment{
			{Ticker: "M"},
			{Ticker: "JWN"},
		},
	}

	t.Run("nil set means no filter", func(t *testing.T) {
		assert.True(t, matchesTickers(article, nil))
	})

	t.Run("matching ticker", func(t *testing.T) {
		assert.True(t, matchesTickers(article, map[string]bool{"JWN": true}))
	})

	t.Run("non-matching ticker", func(t *testing.T) {
		assert.False(t, matchesTickers(article, map[string]bool{"ANF": true}))
	})

	t.Run("empty set matches nothing", func(t *testing.T) {
		assert.False(t, matchesTickers(article, map[string]bool{}))
	})
}
