package queue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// Direções de reordenação na fila.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// Queue é a dona da fila de produção: expande pedidos em trabalhos por
// mesa, controla o ciclo de vida e aplica o consumo de filamento
// exatamente uma vez, na finalização de cada trabalho.
type Queue struct {
	jobs     repository.PrintJobRepository
	products repository.ProductRepository
	finished repository.FinishedGoodRepository
	ledger   Ledger
}

// New constrói o caso de uso da fila.
func New(
	jobs repository.PrintJobRepository,
	products repository.ProductRepository,
	finished repository.FinishedGoodRepository,
	ledger Ledger,
) *Queue {
	return &Queue{jobs: jobs, products: products, finished: finished, ledger: ledger}
}

// Shortfall descreve a falta de um grupo de filamento para um pedido.
type Shortfall struct {
	GroupKey   string  `json:"groupKey"`
	Label      string  `json:"label"`
	RequiredG  float64 `json:"requiredG"`
	AvailableG float64 `json:"availableG"`
	MissingG   float64 `json:"missingG"`
}

// List devolve os trabalhos ativos ordenados por posição.
func (q *Queue) List() ([]*entity.PrintJob, error) {
	active, err := q.activeJobs()
	if err != nil {
		return nil, err
	}
	return active, nil
}

// ListFinishedGoods devolve o estoque de produto acabado por nome.
func (q *Queue) ListFinishedGoods() ([]*entity.FinishedGood, error) {
	goods, err := q.finished.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(goods, func(i, j int) bool { return goods[i].Name < goods[j].Name })
	return goods, nil
}

// Enqueue expande um pedido de units unidades acabadas: um BatchID novo
// por unidade e um trabalho por mesa da receita, no fim da fila. As
// posições são globais e monotônicas entre lotes.
//
// A suficiência de filamento NÃO é verificada aqui — use
// PreviewShortfall para avisar o operador; o material pode chegar antes
// de a impressão começar.
func (q *Queue) Enqueue(ctx context.Context, productID string, units int) ([]*entity.PrintJob, error) {
	if units <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := q.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if len(product.Plates) == 0 {
		return nil, domain.ErrInvalidInput
	}

	active, err := q.activeJobs()
	if err != nil {
		return nil, err
	}
	nextPos := 0
	for _, j := range active {
		if j.QueuePosition > nextPos {
			nextPos = j.QueuePosition
		}
	}

	now := time.Now()
	created := make([]*entity.PrintJob, 0, units*len(product.Plates))
	for u := 0; u < units; u++ {
		batchID := uuid.New().String()
		for i, plate := range product.Plates {
			nextPos++
			created = append(created, &entity.PrintJob{
				ID:                uuid.New().String(),
				BatchID:           batchID,
				ProductID:         product.ID,
				ProductName:       product.Name,
				PlateIndex:        i,
				Plate:             plate,
				PlatesTotal:       len(product.Plates),
				RequiresFinishing: product.RequiresFinishing,
				Status:            entity.JobStatusQueued,
				QueuePosition:     nextPos,
				EstimatedMinutes:  plate.EstimatedMinutes,
				Quantity:          1,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
		}
	}
	for _, j := range created {
		if err := q.jobs.Upsert(j); err != nil {
			return nil, err
		}
	}
	return created, nil
}

// PreviewShortfall calcula, sem mutar nada, quanto filamento falta para
// produzir units unidades. Aviso não fatal: o enfileiramento segue mesmo
// com falta, se o operador quiser.
func (q *Queue) PreviewShortfall(productID string, units int) ([]Shortfall, error) {
	if units <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := q.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	type need struct {
		label string
		grams float64
	}
	needs := make(map[string]*need)
	order := []string{}
	for _, plate := range product.Plates {
		for _, req := range plate.Filaments {
			perUnit := gramsPerUnit(req, plate)
			gk := req.GroupKey()
			n := needs[gk]
			if n == nil {
				n = &need{label: req.Label()}
				needs[gk] = n
				order = append(order, gk)
			}
			n.grams += perUnit * float64(units)
		}
	}

	var missing []Shortfall
	for _, gk := range order {
		n := needs[gk]
		available, err := q.ledger.Available(gk)
		if err != nil {
			return nil, err
		}
		if n.grams > available+1e-9 {
			missing = append(missing, Shortfall{
				GroupKey:   gk,
				Label:      n.label,
				RequiredG:  n.grams,
				AvailableG: available,
				MissingG:   n.grams - available,
			})
		}
	}
	return missing, nil
}

// Reorder troca a posição do trabalho com o vizinho na direção pedida.
// Ilegal para trabalhos em impressão. Na borda da fila é um no-op.
func (q *Queue) Reorder(ctx context.Context, jobID, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return domain.ErrInvalidInput
	}
	active, err := q.activeJobs()
	if err != nil {
		return err
	}
	idx := -1
	for i, j := range active {
		if j.ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	if active[idx].Status == entity.JobStatusPrinting {
		return domain.ErrConflict
	}

	other := idx - 1
	if direction == DirectionDown {
		other = idx + 1
	}
	if other < 0 || other >= len(active) {
		return nil
	}

	now := time.Now()
	active[idx].QueuePosition, active[other].QueuePosition =
		active[other].QueuePosition, active[idx].QueuePosition
	active[idx].UpdatedAt = now
	active[other].UpdatedAt = now
	if err := q.jobs.Upsert(active[idx]); err != nil {
		return err
	}
	return q.jobs.Upsert(active[other])
}

// Start move o trabalho de queued para printing e registra startedAt.
// Não há trava de impressora única: o avanço é do operador, como no chão
// de fábrica manual.
func (q *Queue) Start(ctx context.Context, jobID string) (*entity.PrintJob, error) {
	job, err := q.getActive(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != entity.JobStatusQueued {
		return nil, domain.ErrConflict
	}
	now := time.Now()
	job.Status = entity.JobStatusPrinting
	job.StartedAt = &now
	job.UpdatedAt = now
	if err := q.jobs.Upsert(job); err != nil {
		return nil, err
	}
	return job, nil
}

// StartFinishing move de printing para finishing; só para receitas que
// declaram etapa de retoques.
func (q *Queue) StartFinishing(ctx context.Context, jobID string) (*entity.PrintJob, error) {
	job, err := q.getActive(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != entity.JobStatusPrinting || !job.RequiresFinishing {
		return nil, domain.ErrConflict
	}
	job.Status = entity.JobStatusFinishing
	job.UpdatedAt = time.Now()
	if err := q.jobs.Upsert(job); err != nil {
		return nil, err
	}
	return job, nil
}

// Finish conclui o trabalho (printing|finishing → ready):
//
//  1. consome do estoque, por grupo, grams/unitsOnPlate de cada requisito
//     da mesa — atômico: qualquer falta aborta a chamada inteira e o
//     trabalho fica onde estava, sem baixa parcial;
//  2. tira o trabalho da fila (posição zerada, registro mantido) e
//     reindexa as posições restantes para 1..N denso, sem buracos;
//  3. gating de lote: quando TODAS as PlatesTotal mesas do BatchID estão
//     ready, o estoque de produto acabado ganha +1. Antes disso, nada —
//     o produto está só parcialmente construído.
func (q *Queue) Finish(ctx context.Context, jobID string) (*entity.PrintJob, error) {
	job, err := q.getActive(jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != entity.JobStatusPrinting && job.Status != entity.JobStatusFinishing {
		return nil, domain.ErrConflict
	}

	// Necessidade agregada por grupo (uma mesa pode repetir o grupo).
	needs := make(map[string]float64)
	order := []string{}
	for _, req := range job.Plate.Filaments {
		gk := req.GroupKey()
		if _, ok := needs[gk]; !ok {
			order = append(order, gk)
		}
		needs[gk] += gramsPerUnit(req, job.Plate)
	}

	// Valida tudo antes de consumir qualquer grupo. Processo de escritor
	// único: nada muda entre a validação e o consumo.
	for _, gk := range order {
		available, err := q.ledger.Available(gk)
		if err != nil {
			return nil, err
		}
		if needs[gk] > available+1e-9 {
			return nil, &domain.InsufficientStockError{
				GroupKey:   gk,
				RequestedG: needs[gk],
				AvailableG: available,
			}
		}
	}
	note := fmt.Sprintf("Trabalho %s — %s", job.ID, job.ProductName)
	for _, gk := range order {
		if _, err := q.ledger.Consume(ctx, gk, needs[gk], note); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	job.Status = entity.JobStatusReady
	job.QueuePosition = 0
	job.FinishedAt = &now
	job.UpdatedAt = now
	if err := q.jobs.Upsert(job); err != nil {
		return nil, err
	}
	if err := q.reindex(); err != nil {
		return nil, err
	}
	if err := q.completeBatchIfReady(job, now); err != nil {
		return nil, err
	}
	return job, nil
}

// Cancel remove o trabalho sem consumir nada e reindexa a fila. Os irmãos
// do lote não são tocados: sem este trabalho o lote nunca fecha — para
// completar a unidade é preciso reenfileirar a mesa sob um lote novo.
func (q *Queue) Cancel(ctx context.Context, jobID string) error {
	job, err := q.getActive(jobID)
	if err != nil {
		return err
	}
	if err := q.jobs.Remove(job.ID); err != nil {
		return err
	}
	return q.reindex()
}

// completeBatchIfReady aplica o gating: produto acabado +1 sse a contagem
// de trabalhos ready do lote atingiu PlatesTotal.
func (q *Queue) completeBatchIfReady(job *entity.PrintJob, now time.Time) error {
	all, err := q.jobs.List()
	if err != nil {
		return err
	}
	ready := 0
	for _, j := range all {
		if j.BatchID == job.BatchID && j.Status == entity.JobStatusReady {
			ready++
		}
	}
	if ready != job.PlatesTotal {
		return nil
	}

	goods, err := q.finished.List()
	if err != nil {
		return err
	}
	for _, g := range goods {
		if g.ProductID == job.ProductID {
			g.Quantity++
			g.FinishedAt = now
			g.UpdatedAt = now
			return q.finished.Upsert(g)
		}
	}
	return q.finished.Upsert(&entity.FinishedGood{
		ID:         uuid.New().String(),
		ProductID:  job.ProductID,
		Name:       job.ProductName,
		Quantity:   1,
		FinishedAt: now,
		UpdatedAt:  now,
	})
}

// reindex compacta as posições dos trabalhos ativos para 1..N denso.
func (q *Queue) reindex() error {
	active, err := q.activeJobs()
	if err != nil {
		return err
	}
	now := time.Now()
	for i, j := range active {
		want := i + 1
		if j.QueuePosition == want {
			continue
		}
		j.QueuePosition = want
		j.UpdatedAt = now
		if err := q.jobs.Upsert(j); err != nil {
			return err
		}
	}
	return nil
}

func (q *Queue) activeJobs() ([]*entity.PrintJob, error) {
	all, err := q.jobs.List()
	if err != nil {
		return nil, err
	}
	var active []*entity.PrintJob
	for _, j := range all {
		if j.Active() {
			active = append(active, j)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].QueuePosition < active[j].QueuePosition
	})
	return active, nil
}

func (q *Queue) getActive(jobID string) (*entity.PrintJob, error) {
	job, err := q.jobs.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || !job.Active() {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// gramsPerUnit converte gramas por execução da mesa em gramas por unidade
// acabada: o requisito dividido pelo rendimento da mesa.
func gramsPerUnit(req entity.FilamentRequirement, plate entity.Plate) float64 {
	units := plate.UnitsOnPlate
	if units < 1 {
		units = 1
	}
	return req.Grams / float64(units)
}
