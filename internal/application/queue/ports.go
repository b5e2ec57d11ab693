package queue

import (
	"context"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
)

// Ledger é o contrato da fila com o estoque de filamento. A fila nunca
// mexe em carretel diretamente — só consome por aqui, mantendo a
// conservação de massa verificável em um único lugar.
type Ledger interface {
	Available(groupKey string) (float64, error)
	Consume(ctx context.Context, groupKey string, grams float64, note string) (*entity.FilamentUsage, error)
}
