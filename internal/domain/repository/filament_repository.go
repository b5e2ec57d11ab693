package repository

import "github.com/dihegorc/impressao3d-manager/internal/domain/entity"

// FilamentRepository define o porte de persistência dos carretéis (DIP).
// O núcleo nunca depende da ordem de List — ordenação (FIFO por createdAt)
// é sempre imposta pelos casos de uso.
type FilamentRepository interface {
	List() ([]*entity.Filament, error)
	GetByID(id string) (*entity.Filament, error)
	Upsert(f *entity.Filament) error
	Remove(id string) error
}

// UsageRepository persiste o histórico de consumo. Append-only: o núcleo
// só chama Upsert com registros novos e nunca Remove.
type UsageRepository interface {
	List() ([]*entity.FilamentUsage, error)
	GetByID(id string) (*entity.FilamentUsage, error)
	Upsert(u *entity.FilamentUsage) error
	Remove(id string) error
}
