package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCompanyDisplayName(t *testing.T) {
	c := Company{Ticker: "M", Name: "Macys Inc", Exchange: "NYSE"}
	assert.Equal(t, "Macys Inc", c.DisplayName())

	c.NameDisplay = "Macy's Inc."
	assert.Equal(t, "Macy's Inc.", c.DisplayName())
	assert.Equal(t, "Macy's Inc. (NYSE:M)", c.Label())
}

func TestNewFiscalPeriodLabel(t *testing.T) {
	p := NewFiscalPeriod(time.Date(2021, time.January, 29, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "12 Months\nJan-29-2021", p.Label)
}

func TestLineItemHasData(t *testing.T) {
	v := decimal.NewFromInt(7)

	assert.False(t, LineItem{Values: []*decimal.Decimal{nil, nil}}.HasData())
	assert.True(t, LineItem{Values: []*decimal.Decimal{nil, &v}}.HasData())
	assert.False(t, LineItem{}.HasData())
}

func TestNewsArticleHelpers(t *testing.T) {
	a := NewsArticle{
		TimePublished: time.Date(2026, time.January, 21, 9, 30, 0, 0, time.UTC),
		TickerSentiments: []TickerSentiment{
			{Ticker: "M"},
			{Ticker: "ANF"},
		},
	}
	assert.Equal(t, "January 21, 2026", a.FormattedDate())
	assert.Equal(t, []string{"M", "ANF"}, a.CompanyTickers())
}
