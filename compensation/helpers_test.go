package compensation_test

import "github.com/shopspring/decimal"

func decimalFromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decimalFromString(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
