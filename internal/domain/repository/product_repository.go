package repository

import "github.com/dihegorc/impressao3d-manager/internal/domain/entity"

// ProductRepository define o porte de persistência das receitas de produto.
type ProductRepository interface {
	List() ([]*entity.Product, error)
	GetByID(id string) (*entity.Product, error)
	Upsert(p *entity.Product) error
	Remove(id string) error
}

// AccessoryRepository define o porte do catálogo de acessórios.
type AccessoryRepository interface {
	List() ([]*entity.Accessory, error)
	GetByID(id string) (*entity.Accessory, error)
	Upsert(a *entity.Accessory) error
	Remove(id string) error
}
