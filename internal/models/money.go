package models

import "github.com/shopspring/decimal"

// moneyLimit is the smallest magnitude a numeric(10,2) column rejects.
var moneyLimit = decimal.New(1, 8)

// FitsMoney reports whether d can be stored in a numeric(10,2) column
// unchanged: at most two decimal places and below 100,000,000.
func FitsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(moneyLimit)
}
