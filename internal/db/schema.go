package db

import "github.com/coresight-research/coreiq/internal/models"

// The line item tables below are static schema, not runtime data. Declaration
// order is the display order, including where each subtotal lands relative to
// its components, so reordering entries changes rendered output.

// incomeLineItems maps display labels to income_statements columns. An empty
// key marks a derived row with no direct source column.
var incomeLineItems = []models.LineItemSpec{
	{Label: "Revenue", Key: "total_revenue", Section: models.SectionRevenue},
	{Label: "Other Revenue", Key: "", IsCalculated: true, Section: models.SectionRevenue},
	{Label: "Total Revenue", Key: "total_revenue", Section: models.SectionRevenue},
	{Label: "Cost Of Goods Sold", Key: "cost_of_revenue", Section: models.SectionOperating},
	{Label: "Gross Profit", Key: "gross_profit", Section: models.SectionOperating},
	{Label: "Selling General & Admin Exp.", Key: "selling_general_and_administrative", Section: models.SectionOperating},
	{Label: "R&D Exp.", Key: "research_and_development", Section: models.SectionOperating},
	{Label: "Depreciation & Amort.", Key: "depreciation_and_amortization", Section: models.SectionOperating},
	{Label: "Other Operating Expense/(Income)", Key: "other_non_operating_income", Section: models.SectionOperating},
	{Label: "Other Operating Exp., Total", Key: "operating_expenses", Section: models.SectionOperating},
	{Label: "Operating Income", Key: "operating_income", Section: models.SectionOperating},
	{Label: "Interest Expense", Key: "interest_expense", Section: models.SectionNonOperating},
	{Label: "Interest and Invest. Income", Key: "interest_income", Section: models.SectionNonOperating},
	{Label: "Net Interest Exp.", Key: "net_interest_income", Section: models.SectionNonOperating},
	{Label: "EBT", Key: "income_before_tax", Section: models.SectionSummary},
	{Label: "Income Tax Expense", Key: "income_tax_expense", Section: models.SectionSummary},
	{Label: "Net Income", Key: "net_income", Section: models.SectionSummary},
	{Label: "EBIT", Key: "ebit", Section: models.SectionSummary},
	{Label: "EBITDA", Key: "ebitda", Section: models.SectionSummary},
}

// balanceLineItems maps display labels to keys inside the balance_sheets
// raw_json payload.
var balanceLineItems = []models.LineItemSpec{
	{Label: "Cash And Equivalents", Key: "cashAndCashEquivalentsAtCarryingValue", Section: models.SectionAssets},
	{Label: "Short Term Investments", Key: "shortTermInvestments", Section: models.SectionAssets},
	{Label: "Accounts Receivable", Key: "currentNetReceivables", Section: models.SectionAssets},
	{Label: "Inventory", Key: "inventory", Section: models.SectionAssets},
	{Label: "Other Current Assets", Key: "otherCurrentAssets", Section: models.SectionAssets},
	{Label: "Total Current Assets", Key: "totalCurrentAssets", Section: models.SectionAssets},
	{Label: "Net Property, Plant & Equipment", Key: "propertyPlantEquipment", Section: models.SectionAssets},
	{Label: "Goodwill", Key: "goodwill", Section: models.SectionAssets},
	{Label: "Other Intangibles", Key: "intangibleAssetsExcludingGoodwill", Section: models.SectionAssets},
	{Label: "Long Term Investments", Key: "longTermInvestments", Section: models.SectionAssets},
	{Label: "Other Non-Current Assets", Key: "otherNonCurrentAssets", Section: models.SectionAssets},
	{Label: "Total Assets", Key: "totalAssets", Section: models.SectionAssets},
	{Label: "Accounts Payable", Key: "currentAccountsPayable", Section: models.SectionLiabilities},
	{Label: "Curr. Port. of LT Debt", Key: "currentLongTermDebt", Section: models.SectionLiabilities},
	{Label: "Short Term Debt", Key: "shortTermDebt", Section: models.SectionLiabilities},
	{Label: "Deferred Revenue", Key: "deferredRevenue", Section: models.SectionLiabilities},
	{Label: "Other Current Liabilities", Key: "otherCurrentLiabilities", Section: models.SectionLiabilities},
	{Label: "Total Current Liabilities", Key: "totalCurrentLiabilities", Section: models.SectionLiabilities},
	{Label: "Long-Term Debt", Key: "longTermDebtNoncurrent", Section: models.SectionLiabilities},
	{Label: "Capital Lease Obligations", Key: "capitalLeaseObligations", Section: models.SectionLiabilities},
	{Label: "Other Non-Current Liabilities", Key: "otherNonCurrentLiabilities", Section: models.SectionLiabilities},
	{Label: "Total Liabilities", Key: "totalLiabilities", Section: models.SectionLiabilities},
	{Label: "Common Stock", Key: "commonStock", Section: models.SectionEquity},
	{Label: "Retained Earnings", Key: "retainedEarnings", Section: models.SectionEquity},
	{Label: "Treasury Stock", Key: "treasuryStock", Section: models.SectionEquity},
	{Label: "Total Shareholders Equity", Key: "totalShareholderEquity", Section: models.SectionEquity},
}

// cashFlowLineItems maps display labels to keys inside the cash_flows
// raw_json payload.
var cashFlowLineItems = []models.LineItemSpec{
	{Label: "Net Income", Key: "netIncome", Section: models.SectionOperating},
	{Label: "Depreciation & Amort.", Key: "depreciationDepletionAndAmortization", Section: models.SectionOperating},
	{Label: "Change in Receivables", Key: "changeInReceivables", Section: models.SectionOperating},
	{Label: "Change in Inventory", Key: "changeInInventory", Section: models.SectionOperating},
	{Label: "Change in Op. Liabilities", Key: "changeInOperatingLiabilities", Section: models.SectionOperating},
	{Label: "Cash from Operations", Key: "operatingCashflow", Section: models.SectionOperating},
	{Label: "Capital Expenditure", Key: "capitalExpenditures", Section: models.SectionInvesting},
	{Label: "Cash from Investing", Key: "cashflowFromInvestment", Section: models.SectionInvesting},
	{Label: "Dividends Paid", Key: "dividendPayout", Section: models.SectionFinancing},
	{Label: "Repurchase of Common Stock", Key: "paymentsForRepurchaseOfCommonStock", Section: models.SectionFinancing},
	{Label: "Issuance of Common Stock", Key: "proceedsFromIssuanceOfCommonStock", Section: models.SectionFinancing},
	{Label: "Short Term Debt Issued/(Repaid)", Key: "proceedsFromRepaymentsOfShortTermDebt", Section: models.SectionFinancing},
	{Label: "Cash from Financing", Key: "cashflowFromFinancing", Section: models.SectionFinancing},
	{Label: "Effect of FX Rates", Key: "changeInExchangeRate", Section: models.SectionSummary},
	{Label: "Net Change in Cash", Key: "changeInCashAndCashEquivalents", IsCalculated: true, Section: models.SectionSummary},
}

// lineItemSpecs returns the schema table for a statement type.
func lineItemSpecs(st models.StatementType) []models.LineItemSpec {
	switch st {
	case models.StatementIncome:
		return incomeLineItems
	case models.StatementBalance:
		return balanceLineItems
	case models.StatementCashFlow:
		return cashFlowLineItems
	}
	return nil
}
