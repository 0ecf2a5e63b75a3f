package entity

import "github.com/shopspring/decimal"

func init() {
	// prices travel as JSON numbers (0.005), not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type MenuItem struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Image       string          `db:"image"`
	Price       decimal.Decimal `db:"price"`
}
