package repository

import "github.com/dihegorc/impressao3d-manager/internal/domain/entity"

// SettingsRepository persiste os parâmetros globais de custo.
// Get devolve (nil, nil) quando nada foi salvo ainda; o caso de uso
// aplica os padrões.
type SettingsRepository interface {
	Get() (*entity.AppSettings, error)
	Save(s *entity.AppSettings) error
}
