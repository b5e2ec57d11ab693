package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Materiais mais usados nas receitas. Material é texto livre; estas
// constantes só evitam strings repetidas no seed e nos testes.
const (
	MaterialPLA  = "PLA"
	MaterialABS  = "ABS"
	MaterialPETG = "PETG"
	MaterialTPU  = "TPU"
)

// Filament representa um carretel físico de filamento com peso restante.
// Invariante: 0 <= WeightCurrentG <= WeightInitialG. O carretel é removido
// do estoque quando WeightCurrentG chega a zero.
type Filament struct {
	ID             string          `json:"id"`
	Name           string          `json:"name,omitempty"` // ex: "PLA Branco - Voolt"
	Material       string          `json:"material"`
	Color          string          `json:"color"`
	Brand          string          `json:"brand,omitempty"`
	WeightInitialG float64         `json:"weightInitialG"`
	WeightCurrentG float64         `json:"weightCurrentG"`
	UnitCost       decimal.Decimal `json:"unitCost"` // preço pago pelo carretel (R$)
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// GroupKeyOf deriva a chave de grupo material|cor|marca normalizada.
// Dois carretéis são intercambiáveis sse as chaves coincidem; marca ausente
// normaliza para vazio, sem distinção entre "sem marca" e marca vazia.
func GroupKeyOf(material, color, brand string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return norm(material) + "|" + norm(color) + "|" + norm(brand)
}

// GroupKey devolve a chave de grupo derivada do carretel.
func (f *Filament) GroupKey() string {
	return GroupKeyOf(f.Material, f.Color, f.Brand)
}

// PricePerGram devolve o custo por grama (UnitCost / WeightInitialG).
// Zero quando o peso inicial é inválido, para nunca dividir por zero.
func (f *Filament) PricePerGram() decimal.Decimal {
	if f.WeightInitialG <= 0 {
		return decimal.Zero
	}
	return f.UnitCost.Div(decimal.NewFromFloat(f.WeightInitialG))
}

// FilamentGroup é a agregação de carretéis intercambiáveis.
type FilamentGroup struct {
	GroupKey     string  `json:"groupKey"`
	Material     string  `json:"material"`
	Color        string  `json:"color"`
	Brand        string  `json:"brand,omitempty"`
	TotalWeightG float64 `json:"totalWeightG"`
	SpoolCount   int     `json:"spoolCount"`
}
