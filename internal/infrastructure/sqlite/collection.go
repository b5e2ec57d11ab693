package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// collection implementa o padrão List/GetByID/Upsert/Remove sobre uma
// tabela-documento. Os nomes de tabela vêm das migrações, nunca de entrada
// do usuário, então a interpolação no SQL é segura.
type collection[T any] struct {
	db    *sql.DB
	table string
	idOf  func(*T) string
}

func newCollection[T any](db *sql.DB, table string, idOf func(*T) string) *collection[T] {
	return &collection[T]{db: db, table: table, idOf: idOf}
}

func (c *collection[T]) List() ([]*T, error) {
	rows, err := c.db.Query(fmt.Sprintf(`SELECT data FROM %s`, c.table))
	if err != nil {
		return nil, fmt.Errorf("listar %s: %w", c.table, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("ler linha de %s: %w", c.table, err)
		}
		item := new(T)
		if err := json.Unmarshal([]byte(raw), item); err != nil {
			return nil, fmt.Errorf("decodificar documento de %s: %w", c.table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("percorrer %s: %w", c.table, err)
	}
	return out, nil
}

func (c *collection[T]) GetByID(id string) (*T, error) {
	var raw string
	err := c.db.QueryRow(fmt.Sprintf(`SELECT data FROM %s WHERE id = ?`, c.table), id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscar %s/%s: %w", c.table, id, err)
	}
	item := new(T)
	if err := json.Unmarshal([]byte(raw), item); err != nil {
		return nil, fmt.Errorf("decodificar documento de %s: %w", c.table, err)
	}
	return item, nil
}

func (c *collection[T]) Upsert(item *T) error {
	if item == nil {
		return fmt.Errorf("sqlite: item nulo para %s", c.table)
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("codificar documento de %s: %w", c.table, err)
	}
	_, err = c.db.Exec(fmt.Sprintf(`
		INSERT INTO %s (id, data) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data
	`, c.table), c.idOf(item), string(raw))
	if err != nil {
		return fmt.Errorf("gravar em %s: %w", c.table, err)
	}
	return nil
}

func (c *collection[T]) Remove(id string) error {
	if _, err := c.db.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, c.table), id); err != nil {
		return fmt.Errorf("remover de %s: %w", c.table, err)
	}
	return nil
}
