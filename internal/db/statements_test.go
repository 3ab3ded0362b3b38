package db

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coresight-research/coreiq/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func incomeRow(date string, cols map[string]*decimal.Decimal) statementRow {
	values := make(columnValues, len(cols))
	for k, v := range cols {
		values[k] = v
	}
	return statementRow{fiscalDate: day(date), values: values}
}

func findItem(t *testing.T, data *models.StatementData, label string) *models.LineItem {
	t.Helper()
	for i := range data.LineItems {
		if data.LineItems[i].Label == label {
			return &data.LineItems[i]
		}
	}
	return nil
}

func TestAssembleIncomeStatement(t *testing.T) {
	company := models.Company{Ticker: "AAPL", Name: "Apple Inc."}
	rows := []statementRow{
		incomeRow("2021-09-25", map[string]*decimal.Decimal{
			"total_revenue": dec("365817000000"),
			"gross_profit":  dec("152836000000"),
		}),
		incomeRow("2022-09-24", map[string]*decimal.Decimal{
			"total_revenue": dec("394328000000"),
			"gross_profit":  dec("170782000000"),
		}),
		incomeRow("2023-09-30", map[string]*decimal.Decimal{
			"total_revenue": dec("383285000000"),
			"gross_profit":  dec("169148000000"),
		}),
	}

	data := assembleStatement(models.StatementIncome, company, rows)

	require.Len(t, data.Periods, 3)
	assert.Equal(t, models.StatementIncome, data.Type)
	assert.Equal(t, "AAPL", data.Company.Ticker)

	t.Run("periods ascending and labeled", func(t *testing.T) {
		for i := 1; i < len(data.Periods); i++ {
			assert.True(t, data.Periods[i-1].Date.Before(data.Periods[i].Date))
		}
		assert.Equal(t, "12 Months\nSep-25-2021", data.Periods[0].Label)
	})

	t.Run("values align with periods", func(t *testing.T) {
		for _, item := range data.LineItems {
			assert.Len(t, item.Values, len(data.Periods), item.Label)
		}
	})

	t.Run("values scaled to millions", func(t *testing.T) {
		gross := findItem(t, data, "Gross Profit")
		require.NotNil(t, gross)
		require.NotNil(t, gross.Values[0])
		assert.Equal(t, "152836", gross.Values[0].String())
	})

	t.Run("all-absent line items pruned", func(t *testing.T) {
		assert.Nil(t, findItem(t, data, "Other Operating Expense/(Income)"))
		assert.Nil(t, findItem(t, data, "Net Income"))
	})

	t.Run("derived rows with no source column pruned", func(t *testing.T) {
		assert.Nil(t, findItem(t, data, "Other Revenue"))
	})
}

func TestAssembleStatementDedupesAndSorts(t *testing.T) {
	company := models.Company{Ticker: "M", Name: "Macy's Inc."}
	rows := []statementRow{
		incomeRow("2023-01-28", map[string]*decimal.Decimal{"total_revenue": dec("2000000")}),
		incomeRow("2021-01-30", map[string]*decimal.Decimal{"total_revenue": dec("1000000")}),
		incomeRow("2023-01-28", map[string]*decimal.Decimal{"total_revenue": dec("9000000")}),
	}

	data := assembleStatement(models.StatementIncome, company, rows)

	require.Len(t, data.Periods, 2)
	assert.Equal(t, day("2021-01-30"), data.Periods[0].Date)
	assert.Equal(t, day("2023-01-28"), data.Periods[1].Date)

	// First row per duplicate date wins.
	revenue := findItem(t, data, "Total Revenue")
	require.NotNil(t, revenue)
	require.NotNil(t, revenue.Values[1])
	assert.Equal(t, "2", revenue.Values[1].String())
}

func TestAssembleStatementEmptyRows(t *testing.T) {
	company := models.Company{Ticker: "JWN", Name: "Nordstrom Inc."}

	data := assembleStatement(models.StatementIncome, company, nil)

	require.NotNil(t, data)
	assert.Empty(t, data.Periods)
	assert.Empty(t, data.LineItems)
	assert.Equal(t, "JWN", data.Company.Ticker)
}

func TestAssembleBalanceSheetFromPayload(t *testing.T) {
	company := models.Company{Ticker: "ANF", Name: "Abercrombie & Fitch Co."}
	rows := []statementRow{
		{
			fiscalDate: day("2023-01-28"),
			values: parseStatementDoc([]byte(`{
				"totalAssets": "2848426000",
				"inventory": "505621000",
				"capitalLeaseObligations": "None"
			}`)),
		},
		{
			fiscalDate: day("2024-02-03"),
			values: parseStatementDoc([]byte(`{
				"totalAssets": "3320000000",
				"inventory": "None",
				"capitalLeaseObligations": "None"
			}`)),
		},
	}

	data := assembleStatement(models.StatementBalance, company, rows)

	require.Len(t, data.Periods, 2)

	t.Run("capital leases never reported, row absent entirely", func(t *testing.T) {
		assert.Nil(t, findItem(t, data, "Capital Lease Obligations"))
	})

	t.Run("sparse field keeps nil for missing period", func(t *testing.T) {
		inventory := findItem(t, data, "Inventory")
		require.NotNil(t, inventory)
		require.NotNil(t, inventory.Values[0])
		assert.Nil(t, inventory.Values[1])
	})

	t.Run("section metadata carried through", func(t *testing.T) {
		assets := findItem(t, data, "Total Assets")
		require.NotNil(t, assets)
		assert.Equal(t, models.SectionAssets, assets.Section)
		assert.Equal(t, "2848.426", assets.Values[0].String())
	})
}

func TestAssembleStatementPreservesSchemaOrder(t *testing.T) {
	company := models.Company{Ticker: "KSS", Name: "Kohl's Corporation"}
	rows := []statementRow{
		incomeRow("2023-01-28", map[string]*decimal.Decimal{
			"cost_of_revenue": dec("1000000"),
			"gross_profit":    dec("2000000"),
			"total_revenue":   dec("3000000"),
		}),
	}

	data := assembleStatement(models.StatementIncome, company, rows)

	labels := make([]string, 0, len(data.LineItems))
	for _, item := range data.LineItems {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Revenue", "Total Revenue", "Cost Of Goods Sold", "Gross Profit"}, labels)
}

func TestLineItemSpecs(t *testing.T) {
	assert.NotEmpty(t, lineItemSpecs(models.StatementIncome))
	assert.NotEmpty(t, lineItemSpecs(models.StatementBalance))
	assert.NotEmpty(t, lineItemSpecs(models.StatementCashFlow))
	assert.Nil(t, lineItemSpecs(models.StatementType("bogus")))

	t.Run("labels unique within each table", func(t *testing.T) {
		for _, st := range []models.StatementType{models.StatementIncome, models.StatementBalance, models.StatementCashFlow} {
			seen := map[string]bool{}
			for _, spec := range lineItemSpecs(st) {
				assert.False(t, seen[spec.Label], "%s: duplicate label %s", st, spec.Label)
				seen[spec.Label] = true
			}
		}
	})
}
