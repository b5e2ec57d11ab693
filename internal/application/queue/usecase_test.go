package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihegorc/impressao3d-manager/internal/application/queue"
	"github.com/dihegorc/impressao3d-manager/internal/application/stock"
	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	queue  *queue.Queue
	ledger *stock.Ledger
	store  *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := stock.NewLedger(store.Filaments, store.Usage)
	return &fixture{
		queue:  queue.New(store.Jobs, store.Products, store.FinishedGoods, ledger),
		ledger: ledger,
		store:  store,
	}
}

// seedProduct grava uma receita de duas mesas: cada mesa rende 2 unidades
// e gasta 100g de PLA preto por execução (50g por unidade).
func (f *fixture) seedProduct(t *testing.T, requiresFinishing bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID:                "prod-1",
		Name:              "Suporte articulado",
		PriceBRL:          decimal.NewFromInt(30),
		RequiresFinishing: requiresFinishing,
		Plates: []entity.Plate{
			{
				ID: "plate-1", Name: "Mesa 1", EstimatedMinutes: 90, UnitsOnPlate: 2,
				Filaments: []entity.FilamentRequirement{
					{Material: "PLA", Color: "Preto", Brand: "Voolt", Grams: 100},
				},
			},
			{
				ID: "plate-2", Name: "Mesa 2", EstimatedMinutes: 60, UnitsOnPlate: 2,
				Filaments: []entity.FilamentRequirement{
					{Material: "PLA", Color: "Preto", Brand: "Voolt", Grams: 100},
				},
			},
		},
	}
	require.NoError(t, f.store.Products.Upsert(p))
	return p
}

func (f *fixture) seedSpool(t *testing.T, grams float64) {
	t.Helper()
	require.NoError(t, f.store.Filaments.Upsert(&entity.Filament{
		ID:             "spool-1",
		Material:       "PLA",
		Color:          "Preto",
		Brand:          "Voolt",
		WeightInitialG: grams,
		WeightCurrentG: grams,
		UnitCost:       decimal.NewFromInt(80),
		CreatedAt:      time.Now(),
	}))
}

const keyPLAPreto = "pla|preto|voolt"

// finishJob avança um trabalho até ready (start + finish).
func (f *fixture) finishJob(t *testing.T, jobID string) {
	t.Helper()
	ctx := context.Background()
	_, err := f.queue.Start(ctx, jobID)
	require.NoError(t, err)
	_, err = f.queue.Finish(ctx, jobID)
	require.NoError(t, err)
}

func positions(jobs []*entity.PrintJob) []int {
	out := make([]int, len(jobs))
	for i, j := range jobs {
		out[i] = j.QueuePosition
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Enqueue
// ──────────────────────────────────────────────────────────────────────────────

// 2 unidades × 2 mesas = 4 trabalhos, 2 lotes, posições globais 1..4.
func TestEnqueue_ExpandePedidoEmTrabalhosPorMesa(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)

	created, err := f.queue.Enqueue(context.Background(), "prod-1", 2)
	require.NoError(t, err)
	require.Len(t, created, 4)

	batches := map[string][]int{}
	for _, j := range created {
		batches[j.BatchID] = append(batches[j.BatchID], j.PlateIndex)
		assert.Equal(t, entity.JobStatusQueued, j.Status)
		assert.Equal(t, 2, j.PlatesTotal)
	}
	assert.Len(t, batches, 2, "um BatchID novo por unidade pedida")
	for _, idx := range batches {
		assert.ElementsMatch(t, []int{0, 1}, idx, "cada lote cobre todas as mesas")
	}

	active, err := f.queue.List()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, positions(active))
}

// Posições continuam monotônicas entre pedidos diferentes.
func TestEnqueue_PosicoesGlobaisEntreLotes(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	ctx := context.Background()

	_, err := f.queue.Enqueue(ctx, "prod-1", 1)
	require.NoError(t, err)
	second, err := f.queue.Enqueue(ctx, "prod-1", 1)
	require.NoError(t, err)

	assert.Equal(t, 3, second[0].QueuePosition)
	assert.Equal(t, 4, second[1].QueuePosition)
}

// Enfileirar NÃO verifica estoque: o material pode chegar depois.
func TestEnqueue_SemEstoqueAindaEnfileira(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)

	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestEnqueue_ProdutoInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.queue.Enqueue(context.Background(), "nao-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// PreviewShortfall
// ──────────────────────────────────────────────────────────────────────────────

// A prévia agrega a necessidade por grupo (50g/unidade × mesas × unidades)
// e compara com o disponível, sem mutar nada.
func TestPreviewShortfall_AgregaPorGrupo(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 120)

	// 3 unidades × 2 mesas × 50g = 300g necessários; há 120g.
	missing, err := f.queue.PreviewShortfall("prod-1", 3)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, keyPLAPreto, missing[0].GroupKey)
	assert.InDelta(t, 300, missing[0].RequiredG, 1e-9)
	assert.InDelta(t, 120, missing[0].AvailableG, 1e-9)
	assert.InDelta(t, 180, missing[0].MissingG, 1e-9)

	// Nada mudou no estoque.
	available, err := f.ledger.Available(keyPLAPreto)
	require.NoError(t, err)
	assert.InDelta(t, 120, available, 1e-9)
}

// Estoque suficiente: prévia vazia.
func TestPreviewShortfall_SuficienteSemAvisos(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)

	missing, err := f.queue.PreviewShortfall("prod-1", 3)
	require.NoError(t, err)
	assert.Empty(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Finish (consumo exatamente-uma-vez + gating de lote)
// ──────────────────────────────────────────────────────────────────────────────

// Concluir um trabalho consome gramas/rendimento da mesa, uma única vez.
func TestFinish_ConsomeUmaVezPorTrabalho(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	f.finishJob(t, created[0].ID)

	// Mesa de 100g rendendo 2 → 50g por unidade.
	available, err := f.ledger.Available(keyPLAPreto)
	require.NoError(t, err)
	assert.InDelta(t, 950, available, 1e-9)

	usage, err := f.store.Usage.List()
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Contains(t, usage[0].Note, created[0].ID)
	assert.Contains(t, usage[0].Note, "Suporte articulado")
}

// O produto acabado só ganha +1 quando TODAS as mesas do lote concluem —
// e exatamente uma vez.
func TestFinish_GatingDeLote(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	// Primeira mesa pronta: ainda não há produto acabado.
	f.finishJob(t, created[0].ID)
	goods, err := f.queue.ListFinishedGoods()
	require.NoError(t, err)
	assert.Empty(t, goods, "lote incompleto não gera acabado")

	// Segunda mesa fecha o lote: +1, uma única vez.
	f.finishJob(t, created[1].ID)
	goods, err = f.queue.ListFinishedGoods()
	require.NoError(t, err)
	require.Len(t, goods, 1)
	assert.Equal(t, "prod-1", goods[0].ProductID)
	assert.Equal(t, 1, goods[0].Quantity)
}

// Dois lotes do mesmo produto somam no mesmo registro de acabado.
func TestFinish_LotesSomamNoMesmoAcabado(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 2)
	require.NoError(t, err)

	for _, j := range created {
		f.finishJob(t, j.ID)
	}

	goods, err := f.queue.ListFinishedGoods()
	require.NoError(t, err)
	require.Len(t, goods, 1)
	assert.Equal(t, 2, goods[0].Quantity)
}

// Falta de filamento aborta o Finish inteiro: o trabalho fica em printing
// e nenhum carretel é tocado.
func TestFinish_InsuficienteNaoMutaNada(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 10) // precisa de 50g
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = f.queue.Start(ctx, created[0].ID)
	require.NoError(t, err)
	_, err = f.queue.Finish(ctx, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	job, err := f.store.Jobs.GetByID(created[0].ID)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, entity.JobStatusPrinting, job.Status, "o trabalho fica onde estava")

	available, err := f.ledger.Available(keyPLAPreto)
	require.NoError(t, err)
	assert.InDelta(t, 10, available, 1e-9)
}

// Trabalho pronto sai da listagem ativa e a fila reindexa para 1..N denso.
func TestFinish_ReindexaDenso(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 2)
	require.NoError(t, err)

	// Conclui o segundo da fila (posição 2).
	f.finishJob(t, created[1].ID)

	active, err := f.queue.List()
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, []int{1, 2, 3}, positions(active), "sem buracos nas posições")
	for _, j := range active {
		assert.NotEqual(t, created[1].ID, j.ID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida (start / finishing / cancel / reorder)
// ──────────────────────────────────────────────────────────────────────────────

// Receita com etapa de retoques passa por printing → finishing → ready.
func TestStartFinishing_FluxoComRetoques(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, true)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = f.queue.Start(ctx, created[0].ID)
	require.NoError(t, err)
	job, err := f.queue.StartFinishing(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusFinishing, job.Status)

	done, err := f.queue.Finish(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.JobStatusReady, done.Status)
	require.NotNil(t, done.FinishedAt)
}

// Retoques em receita sem a etapa, ou fora de printing, é conflito.
func TestStartFinishing_Invalido(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	ctx := context.Background()
	// Ainda queued.
	_, err = f.queue.StartFinishing(ctx, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Em printing, mas a receita não declara retoques.
	_, err = f.queue.Start(ctx, created[0].ID)
	require.NoError(t, err)
	_, err = f.queue.StartFinishing(ctx, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Concluir direto de queued é conflito; iniciar duas vezes também.
func TestTransicoesInvalidas(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = f.queue.Finish(ctx, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.queue.Start(ctx, created[0].ID)
	require.NoError(t, err)
	_, err = f.queue.Start(ctx, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Cancelar não consome nada, reindexa a fila e deixa o lote incompleto
// para sempre: concluir as mesas irmãs nunca fecha a unidade.
func TestCancel_LoteNuncaFecha(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, f.queue.Cancel(ctx, created[0].ID))

	// Nada consumido, fila reindexada.
	available, err := f.ledger.Available(keyPLAPreto)
	require.NoError(t, err)
	assert.InDelta(t, 1000, available, 1e-9)
	active, err := f.queue.List()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, 1, active[0].QueuePosition)

	// A mesa irmã conclui, mas o lote ficou incompleto: nenhum acabado.
	f.finishJob(t, created[1].ID)
	goods, err := f.queue.ListFinishedGoods()
	require.NoError(t, err)
	assert.Empty(t, goods, "lote com mesa cancelada nunca fecha")
}

// Reorder troca com o vizinho; em impressão é ilegal; na borda é no-op.
func TestReorder(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, false)
	f.seedSpool(t, 1000)
	created, err := f.queue.Enqueue(context.Background(), "prod-1", 1)
	require.NoError(t, err)
	ctx := context.Background()

	// Sobe o segundo: vira o primeiro.
	require.NoError(t, f.queue.Reorder(ctx, created[1].ID, queue.DirectionUp))
	active, err := f.queue.List()
	require.NoError(t, err)
	assert.Equal(t, created[1].ID, active[0].ID)

	// Na borda de cima, subir é no-op.
	require.NoError(t, f.queue.Reorder(ctx, created[1].ID, queue.DirectionUp))
	again, err := f.queue.List()
	require.NoError(t, err)
	assert.Equal(t, created[1].ID, again[0].ID)

	// Trabalho em impressão não se move.
	_, err = f.queue.Start(ctx, created[1].ID)
	require.NoError(t, err)
	err = f.queue.Reorder(ctx, created[1].ID, queue.DirectionDown)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Direção desconhecida.
	err = f.queue.Reorder(ctx, created[0].ID, "sideways")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
