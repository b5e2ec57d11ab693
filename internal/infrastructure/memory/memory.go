// Package memory traz adaptadores de persistência em memória para os
// portes de repositório. Usados nos testes e como fallback quando não há
// DB_PATH configurado — o comportamento observável é idêntico ao do
// adaptador SQLite.
package memory

import (
	"encoding/json"
	"fmt"
	"sync"
)

// collection guarda documentos JSON-serializáveis indexados por id.
// Leituras e escritas clonam o item (ida e volta por JSON) para o chamador
// nunca compartilhar ponteiros internos com o armazenamento — mesma
// semântica de documento do adaptador SQLite.
type collection[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
	idOf  func(*T) string
}

func newCollection[T any](idOf func(*T) string) *collection[T] {
	return &collection[T]{items: make(map[string]*T), idOf: idOf}
}

func (c *collection[T]) List() ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*T, 0, len(c.items))
	for _, item := range c.items {
		cloned, err := clone(item)
		if err != nil {
			return nil, err
		}
		out = append(out, cloned)
	}
	return out, nil
}

func (c *collection[T]) GetByID(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	return clone(item)
}

func (c *collection[T]) Upsert(item *T) error {
	if item == nil {
		return fmt.Errorf("memory: item nulo")
	}
	cloned, err := clone(item)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.idOf(cloned)] = cloned
	return nil
}

func (c *collection[T]) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	return nil
}

func clone[T any](item *T) (*T, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("memory: serializar item: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("memory: desserializar item: %w", err)
	}
	return out, nil
}
