// Package sqlite traz os adaptadores de persistência sobre SQLite
// (modernc.org/sqlite, sem cgo). Cada entidade vive numa tabela-documento
// (id TEXT PRIMARY KEY, data TEXT) com o payload em JSON — o esquema
// relacional fica nas migrações goose e o formato dos documentos nas
// próprias entidades.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store agrega os repositórios SQLite sobre uma única conexão.
type Store struct {
	DB *sql.DB

	Filaments     repository.FilamentRepository
	Usage         repository.UsageRepository
	Products      repository.ProductRepository
	Accessories   repository.AccessoryRepository
	Jobs          repository.PrintJobRepository
	FinishedGoods repository.FinishedGoodRepository
	Sales         repository.SaleRepository
	Settings      repository.SettingsRepository
}

// Open abre (ou cria) o arquivo do banco, aplica os pragmas recomendados,
// roda as migrações pendentes e monta os repositórios.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("abrir banco sqlite: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("aplicar pragmas sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping no banco sqlite: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		DB:            db,
		Filaments:     newCollection(db, "filaments", func(f *entity.Filament) string { return f.ID }),
		Usage:         newCollection(db, "filament_usage", func(u *entity.FilamentUsage) string { return u.ID }),
		Products:      newCollection(db, "products", func(p *entity.Product) string { return p.ID }),
		Accessories:   newCollection(db, "accessories", func(a *entity.Accessory) string { return a.ID }),
		Jobs:          newCollection(db, "print_jobs", func(j *entity.PrintJob) string { return j.ID }),
		FinishedGoods: newCollection(db, "finished_goods", func(g *entity.FinishedGood) string { return g.ID }),
		Sales:         newCollection(db, "sales", func(s *entity.Sale) string { return s.ID }),
		Settings:      newSettingsRepo(db),
	}, nil
}

// Close fecha a conexão com o banco.
func (s *Store) Close() error {
	return s.DB.Close()
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("configurar dialeto goose: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("rodar migrações goose: %w", err)
	}
	return nil
}
