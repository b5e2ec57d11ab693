package memory

import (
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// Store agrega todos os repositórios em memória sobre um único construtor,
// espelhando a estrutura do adaptador SQLite.
type Store struct {
	Filaments     repository.FilamentRepository
	Usage         repository.UsageRepository
	Products      repository.ProductRepository
	Accessories   repository.AccessoryRepository
	Jobs          repository.PrintJobRepository
	FinishedGoods repository.FinishedGoodRepository
	Sales         repository.SaleRepository
	Settings      repository.SettingsRepository
}

func NewStore() *Store {
	return &Store{
		Filaments:     newCollection(func(f *entity.Filament) string { return f.ID }),
		Usage:         newCollection(func(u *entity.FilamentUsage) string { return u.ID }),
		Products:      newCollection(func(p *entity.Product) string { return p.ID }),
		Accessories:   newCollection(func(a *entity.Accessory) string { return a.ID }),
		Jobs:          newCollection(func(j *entity.PrintJob) string { return j.ID }),
		FinishedGoods: newCollection(func(g *entity.FinishedGood) string { return g.ID }),
		Sales:         newCollection(func(s *entity.Sale) string { return s.ID }),
		Settings:      newSettingsStore(),
	}
}

// settingsStore guarda o documento único de configurações.
type settingsStore struct {
	inner *collection[entity.AppSettings]
}

const settingsKey = "settings"

func newSettingsStore() *settingsStore {
	return &settingsStore{inner: newCollection(func(*entity.AppSettings) string { return settingsKey })}
}

func (s *settingsStore) Get() (*entity.AppSettings, error) {
	return s.inner.GetByID(settingsKey)
}

func (s *settingsStore) Save(cfg *entity.AppSettings) error {
	return s.inner.Upsert(cfg)
}
