package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FilamentRequirement é a necessidade de filamento de uma mesa.
// Grams é por execução da mesa inteira, não por unidade produzida —
// divida por UnitsOnPlate para obter a necessidade unitária.
type FilamentRequirement struct {
	Material string  `json:"material"`
	Color    string  `json:"color"`
	Brand    string  `json:"brand,omitempty"` // vazio = qualquer marca serve
	Grams    float64 `json:"grams"`
}

// GroupKey deriva a chave de grupo do requisito.
func (r FilamentRequirement) GroupKey() string {
	return GroupKeyOf(r.Material, r.Color, r.Brand)
}

// Matches informa se um carretel atende o requisito. Sem marca no
// requisito, qualquer marca do mesmo material+cor serve.
func (r FilamentRequirement) Matches(f *Filament) bool {
	if r.Brand != "" {
		return r.GroupKey() == f.GroupKey()
	}
	return GroupKeyOf(r.Material, r.Color, "") == GroupKeyOf(f.Material, f.Color, "")
}

// Label devolve o rótulo humano do requisito, usado em avisos de falta.
func (r FilamentRequirement) Label() string {
	if r.Brand != "" {
		return r.Material + " - " + r.Color + " - " + r.Brand
	}
	return r.Material + " - " + r.Color
}

// Plate é uma execução independente da impressora: produz UnitsOnPlate
// unidades em EstimatedMinutes, consumindo os filamentos listados.
type Plate struct {
	ID               string                `json:"id"`
	Name             string                `json:"name"` // ex: "Mesa 1"
	EstimatedMinutes float64               `json:"estimatedMinutes"`
	UnitsOnPlate     int                   `json:"unitsOnPlate"`
	Filaments        []FilamentRequirement `json:"filaments"`
}

// AccessoryRequirement referencia um acessório do catálogo pelo nome.
// Quantity é o TOTAL para o lote — não multiplicar pelo rendimento.
// (Correção antiga: a quantidade na lista já é o total do lote.)
type AccessoryRequirement struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Product é a receita de um produto: uma ou mais mesas, acessórios e o
// preço de venda praticado.
type Product struct {
	ID                string                 `json:"id"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description,omitempty"`
	PriceBRL          decimal.Decimal        `json:"priceBRL"`
	Plates            []Plate                `json:"plates"`
	Accessories       []AccessoryRequirement `json:"accessories,omitempty"`
	RequiresFinishing bool                   `json:"requiresFinishing,omitempty"` // etapa de retoques entre impressão e pronto
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}
