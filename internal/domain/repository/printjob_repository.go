package repository

import "github.com/dihegorc/impressao3d-manager/internal/domain/entity"

// PrintJobRepository define o porte de persistência da fila de produção.
// Trabalhos ready permanecem gravados (com posição zerada) para o gating
// de lote; cancelamentos removem o registro de vez.
type PrintJobRepository interface {
	List() ([]*entity.PrintJob, error)
	GetByID(id string) (*entity.PrintJob, error)
	Upsert(j *entity.PrintJob) error
	Remove(id string) error
}

// FinishedGoodRepository define o porte do estoque de produto acabado.
type FinishedGoodRepository interface {
	List() ([]*entity.FinishedGood, error)
	GetByID(id string) (*entity.FinishedGood, error)
	Upsert(g *entity.FinishedGood) error
	Remove(id string) error
}

// SaleRepository define o porte de persistência das vendas.
type SaleRepository interface {
	List() ([]*entity.Sale, error)
	GetByID(id string) (*entity.Sale, error)
	Upsert(s *entity.Sale) error
	Remove(id string) error
}
