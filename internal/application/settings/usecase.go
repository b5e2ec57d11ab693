package settings

import (
	"math"

	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// UseCase lê e grava os parâmetros globais de custo.
type UseCase struct {
	repo repository.SettingsRepository
}

// New constrói o caso de uso de parâmetros.
func New(repo repository.SettingsRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Get devolve os parâmetros salvos ou os padrões da operação.
func (uc *UseCase) Get() (*entity.AppSettings, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return entity.DefaultSettings(), nil
	}
	return s, nil
}

// Update valida e grava os parâmetros.
func (uc *UseCase) Update(s *entity.AppSettings) (*entity.AppSettings, error) {
	if s == nil {
		return nil, domain.ErrInvalidInput
	}
	for _, v := range []float64{s.PowerWatts, s.LifespanHours, s.MonthlyPrintHours, s.FailureRatePct, s.DefaultMarkupPct} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, domain.ErrInvalidInput
		}
	}
	if s.EnergyCostKwh.IsNegative() || s.PrinterPrice.IsNegative() || s.MonthlyFixedCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}
