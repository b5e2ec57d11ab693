package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrOutOfRange        = errors.New("ajuste fora do intervalo permitido")
	ErrInsufficientStock = errors.New("filamento insuficiente")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrUnauthorized      = errors.New("não autorizado")
)

// InsufficientStockError detalha uma falta de filamento em um grupo.
// Carrega o pedido e o disponível para a camada de apresentação informar
// "faltam Xg". Desembrulha para ErrInsufficientStock, então errors.Is
// continua funcionando nos handlers.
type InsufficientStockError struct {
	GroupKey   string
	RequestedG float64
	AvailableG float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("filamento insuficiente no grupo %q: pedido %.2fg, disponível %.2fg (faltam %.2fg)",
		e.GroupKey, e.RequestedG, e.AvailableG, e.ShortfallG())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ShortfallG devolve quantos gramas faltam para atender o pedido.
func (e *InsufficientStockError) ShortfallG() float64 {
	return e.RequestedG - e.AvailableG
}
