package product

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// UseCase cobre o CRUD do catálogo de receitas.
type UseCase struct {
	repo repository.ProductRepository
}

// New constrói o caso de uso de produtos.
func New(repo repository.ProductRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Input é a receita como chega da borda; IDs de mesa são gerados aqui.
type Input struct {
	Name              string
	Description       string
	PriceBRL          decimal.Decimal
	Plates            []PlateInput
	Accessories       []entity.AccessoryRequirement
	RequiresFinishing bool
}

// PlateInput é uma mesa da receita.
type PlateInput struct {
	Name             string
	EstimatedMinutes float64
	UnitsOnPlate     int
	Filaments        []entity.FilamentRequirement
}

// List devolve as receitas ordenadas por nome.
func (uc *UseCase) List() ([]*entity.Product, error) {
	products, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// Get devolve uma receita pelo id.
func (uc *UseCase) Get(id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Create valida e grava uma receita nova.
func (uc *UseCase) Create(in Input) (*entity.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:                uuid.New().String(),
		Name:              strings.TrimSpace(in.Name),
		Description:       strings.TrimSpace(in.Description),
		PriceBRL:          in.PriceBRL,
		Plates:            buildPlates(in.Plates),
		Accessories:       in.Accessories,
		RequiresFinishing: in.RequiresFinishing,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Upsert(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update substitui a receita inteira, preservando id e createdAt.
// Trabalhos já enfileirados não são afetados: cada um carrega o snapshot
// da mesa da hora do enfileiramento.
func (uc *UseCase) Update(id string, in Input) (*entity.Product, error) {
	existing, err := uc.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validate(in); err != nil {
		return nil, err
	}
	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = strings.TrimSpace(in.Description)
	existing.PriceBRL = in.PriceBRL
	existing.Plates = buildPlates(in.Plates)
	existing.Accessories = in.Accessories
	existing.RequiresFinishing = in.RequiresFinishing
	existing.UpdatedAt = time.Now()
	if err := uc.repo.Upsert(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete remove a receita do catálogo.
func (uc *UseCase) Delete(id string) error {
	if _, err := uc.Get(id); err != nil {
		return err
	}
	return uc.repo.Remove(id)
}

func validate(in Input) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.PriceBRL.IsNegative() {
		return domain.ErrInvalidInput
	}
	for _, plate := range in.Plates {
		if plate.UnitsOnPlate < 1 || plate.EstimatedMinutes < 0 || math.IsNaN(plate.EstimatedMinutes) {
			return domain.ErrInvalidInput
		}
		for _, req := range plate.Filaments {
			if strings.TrimSpace(req.Material) == "" || strings.TrimSpace(req.Color) == "" {
				return domain.ErrInvalidInput
			}
			if req.Grams < 0 || math.IsNaN(req.Grams) || math.IsInf(req.Grams, 0) {
				return domain.ErrInvalidInput
			}
		}
	}
	for _, acc := range in.Accessories {
		if strings.TrimSpace(acc.Name) == "" || acc.Quantity < 1 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func buildPlates(in []PlateInput) []entity.Plate {
	plates := make([]entity.Plate, 0, len(in))
	for i, p := range in {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			name = defaultPlateName(i)
		}
		plates = append(plates, entity.Plate{
			ID:               uuid.New().String(),
			Name:             name,
			EstimatedMinutes: p.EstimatedMinutes,
			UnitsOnPlate:     p.UnitsOnPlate,
			Filaments:        p.Filaments,
		})
	}
	return plates
}

func defaultPlateName(index int) string {
	return fmt.Sprintf("Mesa %d", index+1)
}
