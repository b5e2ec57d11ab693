package dto

import "github.com/shopspring/decimal"

// RestockRequest entrada de compra: N carretéis idênticos.
type RestockRequest struct {
	Name       string          `json:"name"`
	Material   string          `json:"material"`
	Color      string          `json:"color"`
	Brand      string          `json:"brand"`
	SpoolCount int             `json:"spoolCount"`
	WeightG    float64         `json:"weightG"`
	UnitCost   decimal.Decimal `json:"unitCost"`
}

// ConsumeRequest baixa manual de filamento em um grupo.
type ConsumeRequest struct {
	GroupKey string  `json:"groupKey"`
	Grams    float64 `json:"grams"`
	Note     string  `json:"note"`
}

// AdjustRequest correção manual do peso de um carretel.
type AdjustRequest struct {
	DeltaG float64 `json:"deltaG"`
}
