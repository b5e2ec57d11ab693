package stock_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihegorc/impressao3d-manager/internal/application/stock"
	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

func newLedger(t *testing.T) (*stock.Ledger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return stock.NewLedger(store.Filaments, store.Usage), store
}

// seedSpool grava um carretel direto no repositório, com createdAt
// controlado para fixar a ordem FIFO.
func seedSpool(t *testing.T, store *memory.Store, id, material, color, brand string, grams float64, createdAt time.Time) {
	t.Helper()
	err := store.Filaments.Upsert(&entity.Filament{
		ID:             id,
		Name:           material + " " + color,
		Material:       material,
		Color:          color,
		Brand:          brand,
		WeightInitialG: grams,
		WeightCurrentG: grams,
		UnitCost:       decimal.RequireFromString("89.90"),
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	})
	require.NoError(t, err)
}

func totalGrams(t *testing.T, ledger *stock.Ledger, groupKey string) float64 {
	t.Helper()
	total, err := ledger.Available(groupKey)
	require.NoError(t, err)
	return total
}

var (
	t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(24 * time.Hour)
)

const keyPLAPreto = "pla|preto|voolt"

// ──────────────────────────────────────────────────────────────────────────────
// Consume (baixa FIFO)
// ──────────────────────────────────────────────────────────────────────────────

// O carretel mais antigo é drenado primeiro; o que sobra sai do mais novo.
func TestConsume_FIFODrenaMaisAntigoPrimeiro(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 400, t0)
	seedSpool(t, store, "spool-b", "PLA", "Preto", "Voolt", 1000, t1)

	record, err := ledger.Consume(context.Background(), keyPLAPreto, 600, "pedido #42")
	require.NoError(t, err)

	// O carretel antigo zerou e foi removido do estoque.
	gone, err := store.Filaments.GetByID("spool-a")
	require.NoError(t, err)
	assert.Nil(t, gone, "carretel zerado deve sair do estoque")

	// O mais novo perdeu só os 200g restantes.
	newer, err := store.Filaments.GetByID("spool-b")
	require.NoError(t, err)
	require.NotNil(t, newer)
	assert.InDelta(t, 800, newer.WeightCurrentG, 1e-9)

	// Conservação de massa: 1400 - 600 = 800.
	assert.InDelta(t, 800, totalGrams(t, ledger, keyPLAPreto), 1e-9)

	// Exatamente um registro de histórico, com o total pedido.
	assert.Equal(t, keyPLAPreto, record.GroupKey)
	assert.InDelta(t, 600, record.GramsUsed, 1e-9)
	usage, err := store.Usage.List()
	require.NoError(t, err)
	assert.Len(t, usage, 1, "uma baixa = um registro, não um por carretel")
}

// Pedido acima do disponível rejeita a operação inteira antes de qualquer
// gravação: nenhum carretel muda e nada entra no histórico.
func TestConsume_InsuficienteNaoMutaNada(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 400, t0)

	_, err := ledger.Consume(context.Background(), keyPLAPreto, 500, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.InDelta(t, 100, insufficient.ShortfallG(), 1e-9)
	assert.InDelta(t, 400, insufficient.AvailableG, 1e-9)

	spool, err := store.Filaments.GetByID("spool-a")
	require.NoError(t, err)
	require.NotNil(t, spool)
	assert.InDelta(t, 400, spool.WeightCurrentG, 1e-9)

	usage, err := store.Usage.List()
	require.NoError(t, err)
	assert.Empty(t, usage, "rejeição não pode gerar histórico")
}

// Consumir exatamente o disponível zera o grupo e remove todos os carretéis.
func TestConsume_TotalExatoZeraOGrupo(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 400, t0)
	seedSpool(t, store, "spool-b", "PLA", "Preto", "Voolt", 600, t1)

	_, err := ledger.Consume(context.Background(), keyPLAPreto, 1000, "")
	require.NoError(t, err)

	assert.InDelta(t, 0, totalGrams(t, ledger, keyPLAPreto), 1e-9)
	spools, err := store.Filaments.List()
	require.NoError(t, err)
	assert.Empty(t, spools)
}

// Grupos são isolados: baixa em PLA preto nunca toca PETG branco.
func TestConsume_NaoVazaParaOutroGrupo(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 400, t0)
	seedSpool(t, store, "spool-c", "PETG", "Branco", "Voolt", 1000, t0)

	_, err := ledger.Consume(context.Background(), keyPLAPreto, 100, "")
	require.NoError(t, err)

	other, err := store.Filaments.GetByID("spool-c")
	require.NoError(t, err)
	require.NotNil(t, other)
	assert.InDelta(t, 1000, other.WeightCurrentG, 1e-9)
}

// Entradas inválidas: gramas não positivas ou não finitas.
func TestConsume_EntradaInvalida(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	for _, grams := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		_, err := ledger.Consume(ctx, keyPLAPreto, grams, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
	_, err := ledger.Consume(ctx, "", 10, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock
// ──────────────────────────────────────────────────────────────────────────────

// Compra de N carretéis cria N entidades independentes no mesmo grupo.
func TestRestock_CriaCarreteisIndependentes(t *testing.T) {
	ledger, _ := newLedger(t)

	spools, err := ledger.Restock(context.Background(), stock.RestockInput{
		Name:       "PLA Preto",
		Material:   "PLA",
		Color:      "Preto",
		Brand:      "Voolt",
		SpoolCount: 3,
		WeightG:    1000,
		UnitCost:   decimal.RequireFromString("89.90"),
	})
	require.NoError(t, err)
	require.Len(t, spools, 3)

	ids := map[string]bool{}
	for _, s := range spools {
		ids[s.ID] = true
		assert.Equal(t, keyPLAPreto, s.GroupKey())
		assert.InDelta(t, 1000, s.WeightCurrentG, 1e-9)
	}
	assert.Len(t, ids, 3, "cada carretel tem identidade própria")

	assert.InDelta(t, 3000, totalGrams(t, ledger, keyPLAPreto), 1e-9)
}

// Carretéis novos entram depois dos antigos no FIFO.
func TestRestock_NovosEntramDepoisNoFIFO(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-velho", "PLA", "Preto", "Voolt", 200, t0)

	_, err := ledger.Restock(context.Background(), stock.RestockInput{
		Material:   "PLA",
		Color:      "Preto",
		Brand:      "Voolt",
		SpoolCount: 1,
		WeightG:    1000,
		UnitCost:   decimal.Zero,
	})
	require.NoError(t, err)

	_, err = ledger.Consume(context.Background(), keyPLAPreto, 200, "")
	require.NoError(t, err)

	gone, err := store.Filaments.GetByID("spool-velho")
	require.NoError(t, err)
	assert.Nil(t, gone, "o antigo drena antes do recém-comprado")
	assert.InDelta(t, 1000, totalGrams(t, ledger, keyPLAPreto), 1e-9)
}

func TestRestock_EntradaInvalida(t *testing.T) {
	ledger, _ := newLedger(t)
	ctx := context.Background()

	cases := []stock.RestockInput{
		{Material: "", Color: "Preto", SpoolCount: 1, WeightG: 1000},
		{Material: "PLA", Color: "", SpoolCount: 1, WeightG: 1000},
		{Material: "PLA", Color: "Preto", SpoolCount: 0, WeightG: 1000},
		{Material: "PLA", Color: "Preto", SpoolCount: 1, WeightG: 0},
		{Material: "PLA", Color: "Preto", SpoolCount: 1, WeightG: -10},
		{Material: "PLA", Color: "Preto", SpoolCount: 1, WeightG: 1000, UnitCost: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := ledger.Restock(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Adjust (correção manual)
// ──────────────────────────────────────────────────────────────────────────────

// Delta que sairia de [0, inicial] rejeita sem tocar o carretel.
func TestAdjust_ForaDaFaixaNaoMuta(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 1000, t0)
	// Metade já consumida.
	_, err := ledger.Consume(context.Background(), keyPLAPreto, 500, "")
	require.NoError(t, err)

	ctx := context.Background()
	_, err = ledger.Adjust(ctx, "spool-a", 600) // 1100 > inicial 1000
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	_, err = ledger.Adjust(ctx, "spool-a", -600) // -100 < 0
	assert.ErrorIs(t, err, domain.ErrOutOfRange)

	spool, err := store.Filaments.GetByID("spool-a")
	require.NoError(t, err)
	require.NotNil(t, spool)
	assert.InDelta(t, 500, spool.WeightCurrentG, 1e-9)
}

// Ajuste válido move o peso e não gera histórico de consumo.
func TestAdjust_CorrecaoValidaSemHistorico(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 1000, t0)

	updated, err := ledger.Adjust(context.Background(), "spool-a", -250)
	require.NoError(t, err)
	assert.InDelta(t, 750, updated.WeightCurrentG, 1e-9)

	usage, err := store.Usage.List()
	require.NoError(t, err)
	assert.Empty(t, usage, "correção manual não é consumo de produção")
}

// Ajuste que zera o carretel o remove do estoque, como no consumo.
func TestAdjust_ZerarRemoveCarretel(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 300, t0)

	updated, err := ledger.Adjust(context.Background(), "spool-a", -300)
	require.NoError(t, err)
	assert.InDelta(t, 0, updated.WeightCurrentG, 1e-9)

	gone, err := store.Filaments.GetByID("spool-a")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAdjust_CarretelInexistente(t *testing.T) {
	ledger, _ := newLedger(t)
	_, err := ledger.Adjust(context.Background(), "nao-existe", -10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListGroups
// ──────────────────────────────────────────────────────────────────────────────

// A agregação é pura: duas chamadas seguidas devolvem os mesmos totais, e a
// chave normaliza caixa, espaços e marca ausente.
func TestListGroups_AgregacaoIdempotenteENormalizada(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 400, t0)
	seedSpool(t, store, "spool-b", " pla ", "PRETO", "voolt", 600, t1)
	seedSpool(t, store, "spool-c", "PETG", "Branco", "", 1000, t0)

	groups, err := ledger.ListGroups()
	require.NoError(t, err)
	require.Len(t, groups, 2)

	again, err := ledger.ListGroups()
	require.NoError(t, err)
	assert.Equal(t, groups, again, "agregação não pode ter efeito colateral")

	// Ordenado por material: PETG antes de PLA.
	assert.Equal(t, "petg|branco|", groups[0].GroupKey)
	assert.InDelta(t, 1000, groups[0].TotalWeightG, 1e-9)
	assert.Equal(t, 1, groups[0].SpoolCount)

	assert.Equal(t, keyPLAPreto, groups[1].GroupKey)
	assert.InDelta(t, 1000, groups[1].TotalWeightG, 1e-9)
	assert.Equal(t, 2, groups[1].SpoolCount)
}

// ListSpools devolve na ordem FIFO, com empate de createdAt resolvido por ID.
func TestListSpools_OrdemFIFODeterministica(t *testing.T) {
	ledger, store := newLedger(t)
	seedSpool(t, store, "spool-b", "PLA", "Preto", "Voolt", 100, t1)
	seedSpool(t, store, "spool-a", "PLA", "Preto", "Voolt", 100, t1)
	seedSpool(t, store, "spool-z", "PLA", "Preto", "Voolt", 100, t0)

	spools, err := ledger.ListSpools()
	require.NoError(t, err)
	require.Len(t, spools, 3)
	assert.Equal(t, "spool-z", spools[0].ID)
	assert.Equal(t, "spool-a", spools[1].ID)
	assert.Equal(t, "spool-b", spools[2].ID)
}
