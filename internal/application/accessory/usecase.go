package accessory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// UseCase cobre o CRUD do catálogo de acessórios.
type UseCase struct {
	repo repository.AccessoryRepository
}

// New constrói o caso de uso de acessórios.
func New(repo repository.AccessoryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devolve o catálogo ordenado por nome.
func (uc *UseCase) List() ([]*entity.Accessory, error) {
	items, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// Get devolve um acessório pelo id.
func (uc *UseCase) Get(id string) (*entity.Accessory, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// Create grava um acessório novo.
func (uc *UseCase) Create(name string, unitCost decimal.Decimal) (*entity.Accessory, error) {
	name = strings.TrimSpace(name)
	if name == "" || unitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.Accessory{
		ID:        uuid.New().String(),
		Name:      name,
		UnitCost:  unitCost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Upsert(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update altera nome e custo de um acessório.
func (uc *UseCase) Update(id, name string, unitCost decimal.Decimal) (*entity.Accessory, error) {
	a, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || unitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	a.Name = name
	a.UnitCost = unitCost
	a.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete remove o acessório do catálogo.
func (uc *UseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.repo.Remove(id)
}
