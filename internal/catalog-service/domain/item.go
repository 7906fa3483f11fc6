// Package domain holds the three catalog item records. The catalog owns
// pricing and stock; the invoicing service only ever reads them.
package domain

import "github.com/shopspring/decimal"

type Console struct {
	ID           int64           `json:"id"`
	Model        string          `json:"model"`
	Manufacturer string          `json:"manufacturer"`
	MemoryAmount string          `json:"memory_amount"`
	Processor    string          `json:"processor"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
}

type Game struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	EsrbRating  string          `json:"esrb_rating"`
	Description string          `json:"description"`
	Studio      string          `json:"studio"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}

type TShirt struct {
	ID          int64           `json:"id"`
	Size        string          `json:"size"`
	Color       string          `json:"color"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
}
