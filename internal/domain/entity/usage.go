package entity

import "time"

// FilamentUsage é um evento de consumo registrado pelo estoque.
// Histórico append-only: nunca é alterado nem removido depois de criado.
// Ajustes manuais (Adjust) não geram registro aqui de propósito, para o
// histórico refletir só consumo de produção.
type FilamentUsage struct {
	ID        string    `json:"id"`
	GroupKey  string    `json:"groupKey"`
	GramsUsed float64   `json:"gramsUsed"`
	Note      string    `json:"note,omitempty"` // ex: "Chaveiro Heitor", "Suporte GoPro"
	CreatedAt time.Time `json:"createdAt"`
}
