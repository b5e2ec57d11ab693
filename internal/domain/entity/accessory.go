package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Accessory é um item comprado que acompanha o produto (argola, ímã,
// embalagem). O custo unitário entra no cálculo do lote.
type Accessory struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
