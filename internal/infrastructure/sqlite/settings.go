package sqlite

import (
	"database/sql"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
)

// settingsRepo guarda o documento único de configurações na tabela
// app_settings, sempre sob a mesma chave.
type settingsRepo struct {
	inner *collection[entity.AppSettings]
}

const settingsKey = "settings"

func newSettingsRepo(db *sql.DB) *settingsRepo {
	return &settingsRepo{
		inner: newCollection(db, "app_settings", func(*entity.AppSettings) string { return settingsKey }),
	}
}

func (r *settingsRepo) Get() (*entity.AppSettings, error) {
	return r.inner.GetByID(settingsKey)
}

func (r *settingsRepo) Save(cfg *entity.AppSettings) error {
	return r.inner.Upsert(cfg)
}
