package entity

import "time"

// FinishedGood é o estoque de produto acabado: incrementado em uma unidade
// quando todas as mesas de um lote chegam a ready, decrementado por venda.
type FinishedGood struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"productId"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	FinishedAt time.Time `json:"finishedAt"` // última unidade concluída
	UpdatedAt  time.Time `json:"updatedAt"`
}
