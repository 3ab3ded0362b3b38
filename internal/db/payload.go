package db

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// statementDoc is the parsed form of one balance-sheet or cash-flow payload:
// a flat key/value document where values may be numbers, numeric strings, the
// literal string "None", or junk. All lookups normalize failure to nil so a
// bad field reads as absent rather than erroring.
type statementDoc map[string]interface{}

// parseStatementDoc decodes a raw payload. An unparseable payload yields an
// empty document, so every key reads as absent.
func parseStatementDoc(raw []byte) statementDoc {
	if len(raw) == 0 {
		return statementDoc{}
	}
	var doc statementDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return statementDoc{}
	}
	if doc == nil {
		return statementDoc{}
	}
	return doc
}

// Number extracts a numeric value by key. Missing keys, JSON null, the string
// "None" and non-numeric values all return nil.
func (d statementDoc) Number(key string) *decimal.Decimal {
	v, ok := d[key]
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case float64:
		dec := decimal.NewFromFloat(val)
		return &dec
	case string:
		if val == "" || val == "None" {
			return nil
		}
		dec, err := decimal.NewFromString(val)
		if err != nil {
			return nil
		}
		return &dec
	}
	return nil
}
