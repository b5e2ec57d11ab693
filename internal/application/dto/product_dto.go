package dto

import (
	"github.com/shopspring/decimal"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
)

// PlateRequest uma mesa da receita.
type PlateRequest struct {
	Name             string                       `json:"name"`
	EstimatedMinutes float64                      `json:"estimatedMinutes"`
	UnitsOnPlate     int                          `json:"unitsOnPlate"`
	Filaments        []entity.FilamentRequirement `json:"filaments"`
}

// ProductRequest criação/edição de receita.
type ProductRequest struct {
	Name              string                        `json:"name"`
	Description       string                        `json:"description"`
	PriceBRL          decimal.Decimal               `json:"priceBRL"`
	Plates            []PlateRequest                `json:"plates"`
	Accessories       []entity.AccessoryRequirement `json:"accessories"`
	RequiresFinishing bool                          `json:"requiresFinishing"`
}

// AccessoryRequest criação/edição de acessório do catálogo.
type AccessoryRequest struct {
	Name     string          `json:"name"`
	UnitCost decimal.Decimal `json:"unitCost"`
}
