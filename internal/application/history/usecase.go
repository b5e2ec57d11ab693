package history

import (
	"sort"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// History lê o log de consumo gravado pelo estoque. Só leitura: o log é
// append-only e correções passam por Adjust no estoque, nunca por aqui.
type History struct {
	usage repository.UsageRepository
}

// New constrói o caso de uso do histórico.
func New(usage repository.UsageRepository) *History {
	return &History{usage: usage}
}

// ListAll devolve todos os registros, mais recentes primeiro.
func (h *History) ListAll() ([]*entity.FilamentUsage, error) {
	records, err := h.usage.List()
	if err != nil {
		return nil, err
	}
	sortNewestFirst(records)
	return records, nil
}

// ListByGroup devolve os registros de um grupo, mais recentes primeiro.
func (h *History) ListByGroup(groupKey string) ([]*entity.FilamentUsage, error) {
	records, err := h.usage.List()
	if err != nil {
		return nil, err
	}
	filtered := records[:0:0]
	for _, r := range records {
		if r.GroupKey == groupKey {
			filtered = append(filtered, r)
		}
	}
	sortNewestFirst(filtered)
	return filtered, nil
}

func sortNewestFirst(records []*entity.FilamentUsage) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})
}
