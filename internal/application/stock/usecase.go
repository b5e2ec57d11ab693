package stock

import (
	"context"
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

// Tolerância para resíduo de ponto flutuante ao zerar um carretel.
const weightEpsilon = 1e-9

// Ledger é o dono exclusivo do estoque de carretéis e do histórico de
// consumo. Toda baixa de filamento passa por aqui — a fila de produção
// nunca mexe em carretel diretamente, o que mantém a conservação de massa
// verificável em um único lugar.
//
// Cada operação lê e calcula tudo primeiro e só então grava; uma queda no
// meio das gravações pode deixar estado parcial (limitação documentada do
// armazenamento chave/valor, sem transação real).
type Ledger struct {
	filaments repository.FilamentRepository
	usage     repository.UsageRepository
}

// NewLedger constrói o caso de uso do estoque.
func NewLedger(filaments repository.FilamentRepository, usage repository.UsageRepository) *Ledger {
	return &Ledger{filaments: filaments, usage: usage}
}

// RestockInput é a entrada de compra: N carretéis idênticos.
type RestockInput struct {
	Name       string
	Material   string
	Color      string
	Brand      string
	SpoolCount int
	WeightG    float64 // peso de cada carretel
	UnitCost   decimal.Decimal
}

// ListSpools devolve todos os carretéis, mais antigos primeiro.
func (l *Ledger) ListSpools() ([]*entity.Filament, error) {
	spools, err := l.filaments.List()
	if err != nil {
		return nil, err
	}
	sortFIFO(spools)
	return spools, nil
}

// ListGroups agrega os carretéis por chave de grupo. Sem efeitos
// colaterais; duas chamadas seguidas devolvem os mesmos totais.
func (l *Ledger) ListGroups() ([]*entity.FilamentGroup, error) {
	spools, err := l.filaments.List()
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*entity.FilamentGroup)
	for _, f := range spools {
		gk := f.GroupKey()
		g := byKey[gk]
		if g == nil {
			g = &entity.FilamentGroup{
				GroupKey: gk,
				Material: f.Material,
				Color:    f.Color,
				Brand:    f.Brand,
			}
			byKey[gk] = g
		}
		g.TotalWeightG += f.WeightCurrentG
		g.SpoolCount++
	}
	groups := make([]*entity.FilamentGroup, 0, len(byKey))
	for _, g := range byKey {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Material != groups[j].Material {
			return groups[i].Material < groups[j].Material
		}
		return groups[i].GroupKey < groups[j].GroupKey
	})
	return groups, nil
}

// Available devolve a soma de gramas disponíveis no grupo.
func (l *Ledger) Available(groupKey string) (float64, error) {
	spools, err := l.filaments.List()
	if err != nil {
		return 0, err
	}
	var total float64
	for _, f := range spools {
		if f.GroupKey() == groupKey {
			total += f.WeightCurrentG
		}
	}
	return total, nil
}

// Consume aplica uma baixa FIFO no grupo: carretel mais antigo primeiro
// (primeiro a entrar, primeiro a ser usado, limitando risco de validade).
//
// Rejeita a operação inteira ANTES de tocar qualquer carretel quando o
// pedido excede o disponível — nunca há baixa parcial. Carretel zerado é
// removido (a massa nunca fica negativa; resíduo de float trava em zero).
// Registra exatamente um FilamentUsage por chamada, não por carretel.
func (l *Ledger) Consume(ctx context.Context, groupKey string, grams float64, note string) (*entity.FilamentUsage, error) {
	if groupKey == "" || !isFiniteGrams(grams) || grams <= 0 {
		return nil, domain.ErrInvalidInput
	}

	all, err := l.filaments.List()
	if err != nil {
		return nil, err
	}
	var group []*entity.Filament
	var available float64
	for _, f := range all {
		if f.GroupKey() == groupKey {
			group = append(group, f)
			available += f.WeightCurrentG
		}
	}
	if grams > available+weightEpsilon {
		return nil, &domain.InsufficientStockError{
			GroupKey:   groupKey,
			RequestedG: grams,
			AvailableG: available,
		}
	}

	sortFIFO(group)
	now := time.Now()

	// Fase de cálculo: decide remoções e atualizações sem gravar nada.
	remaining := grams
	var toRemove []string
	var toUpsert []*entity.Filament
	for _, spool := range group {
		if remaining <= weightEpsilon {
			break
		}
		take := math.Min(remaining, spool.WeightCurrentG)
		remaining -= take
		newWeight := spool.WeightCurrentG - take
		if newWeight <= weightEpsilon {
			toRemove = append(toRemove, spool.ID)
			continue
		}
		updated := *spool
		updated.WeightCurrentG = newWeight
		updated.UpdatedAt = now
		toUpsert = append(toUpsert, &updated)
	}

	// Fase de gravação: carretéis primeiro, histórico por último.
	for _, id := range toRemove {
		if err := l.filaments.Remove(id); err != nil {
			return nil, err
		}
	}
	for _, f := range toUpsert {
		if err := l.filaments.Upsert(f); err != nil {
			return nil, err
		}
	}

	record := &entity.FilamentUsage{
		ID:        uuid.New().String(),
		GroupKey:  groupKey,
		GramsUsed: grams,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
	}
	if err := l.usage.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Restock cria N carretéis idênticos, cada um com identidade própria e
// createdAt = agora — entram naturalmente depois dos antigos no FIFO.
func (l *Ledger) Restock(ctx context.Context, in RestockInput) ([]*entity.Filament, error) {
	if strings.TrimSpace(in.Material) == "" || strings.TrimSpace(in.Color) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SpoolCount <= 0 || !isFiniteGrams(in.WeightG) || in.WeightG <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	spools := make([]*entity.Filament, 0, in.SpoolCount)
	for i := 0; i < in.SpoolCount; i++ {
		spools = append(spools, &entity.Filament{
			ID:             uuid.New().String(),
			Name:           strings.TrimSpace(in.Name),
			Material:       strings.TrimSpace(in.Material),
			Color:          strings.TrimSpace(in.Color),
			Brand:          strings.TrimSpace(in.Brand),
			WeightInitialG: in.WeightG,
			WeightCurrentG: in.WeightG,
			UnitCost:       in.UnitCost,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	for _, f := range spools {
		if err := l.filaments.Upsert(f); err != nil {
			return nil, err
		}
	}
	return spools, nil
}

// Adjust aplica uma correção manual no peso de um carretel (ex: desfazer
// um consumo lançado errado). Rejeita com OutOfRange, sem tocar o
// carretel, qualquer delta que levaria o peso para fora de [0, inicial].
// Não gera histórico — correção manual não é consumo de produção.
func (l *Ledger) Adjust(ctx context.Context, spoolID string, delta float64) (*entity.Filament, error) {
	if spoolID == "" || !isFiniteGrams(delta) || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	spool, err := l.filaments.GetByID(spoolID)
	if err != nil {
		return nil, err
	}
	if spool == nil {
		return nil, domain.ErrNotFound
	}

	newWeight := spool.WeightCurrentG + delta
	if newWeight < -weightEpsilon || newWeight > spool.WeightInitialG+weightEpsilon {
		return nil, domain.ErrOutOfRange
	}
	// Trava nos limites exatos para resíduo de float.
	newWeight = math.Min(math.Max(newWeight, 0), spool.WeightInitialG)

	if newWeight <= weightEpsilon {
		// Zerou: mesmo ciclo de vida do consumo, o carretel sai do estoque.
		if err := l.filaments.Remove(spool.ID); err != nil {
			return nil, err
		}
		removed := *spool
		removed.WeightCurrentG = 0
		removed.UpdatedAt = time.Now()
		return &removed, nil
	}

	updated := *spool
	updated.WeightCurrentG = newWeight
	updated.UpdatedAt = time.Now()
	if err := l.filaments.Upsert(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// sortFIFO ordena por createdAt crescente; empate resolve por ID para a
// ordem ser total e determinística mesmo em lotes comprados juntos.
func sortFIFO(spools []*entity.Filament) {
	sort.Slice(spools, func(i, j int) bool {
		if !spools[i].CreatedAt.Equal(spools[j].CreatedAt) {
			return spools[i].CreatedAt.Before(spools[j].CreatedAt)
		}
		return spools[i].ID < spools[j].ID
	})
}

func isFiniteGrams(g float64) bool {
	return !math.IsNaN(g) && !math.IsInf(g, 0)
}
