package memory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/infrastructure/memory"
)

func sampleSpool(id string) *entity.Filament {
	return &entity.Filament{
		ID:             id,
		Material:       "PLA",
		Color:          "Preto",
		WeightInitialG: 1000,
		WeightCurrentG: 1000,
		UnitCost:       decimal.RequireFromString("89.90"),
		CreatedAt:      time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestUpsertGetRemove(t *testing.T) {
	store := memory.NewStore()

	require.NoError(t, store.Filaments.Upsert(sampleSpool("spool-1")))

	got, err := store.Filaments.GetByID("spool-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "PLA", got.Material)
	assert.True(t, got.UnitCost.Equal(decimal.RequireFromString("89.90")))

	// Id desconhecido: (nil, nil), sem erro.
	missing, err := store.Filaments.GetByID("nao-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Filaments.Remove("spool-1"))
	gone, err := store.Filaments.GetByID("spool-1")
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Remover o que não existe é idempotente.
	require.NoError(t, store.Filaments.Remove("spool-1"))
}

// O armazenamento devolve clones: mutar o que saiu de Get não muda o que
// está guardado.
func TestIsolamentoDeClones(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Filaments.Upsert(sampleSpool("spool-1")))

	got, err := store.Filaments.GetByID("spool-1")
	require.NoError(t, err)
	got.WeightCurrentG = 1

	again, err := store.Filaments.GetByID("spool-1")
	require.NoError(t, err)
	assert.InDelta(t, 1000, again.WeightCurrentG, 1e-9)

	// O mesmo vale na escrita: mutar depois do Upsert não vaza.
	spool := sampleSpool("spool-2")
	require.NoError(t, store.Filaments.Upsert(spool))
	spool.WeightCurrentG = 1
	saved, err := store.Filaments.GetByID("spool-2")
	require.NoError(t, err)
	assert.InDelta(t, 1000, saved.WeightCurrentG, 1e-9)
}

func TestList(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Filaments.Upsert(sampleSpool("spool-1")))
	require.NoError(t, store.Filaments.Upsert(sampleSpool("spool-2")))

	all, err := store.Filaments.List()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// O documento único de configurações: Get devolve (nil, nil) antes do
// primeiro Save e o último Save vence.
func TestSettings(t *testing.T) {
	store := memory.NewStore()

	s, err := store.Settings.Get()
	require.NoError(t, err)
	assert.Nil(t, s)

	first := entity.DefaultSettings()
	require.NoError(t, store.Settings.Save(first))

	second := entity.DefaultSettings()
	second.PowerWatts = 275
	require.NoError(t, store.Settings.Save(second))

	got, err := store.Settings.Get()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, 275, got.PowerWatts, 1e-9)
}
