package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dihegorc/impressao3d-manager/internal/domain"
	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
	"github.com/dihegorc/impressao3d-manager/internal/domain/repository"
)

// UseCase registra vendas de produto acabado e mantém a listagem.
// A baixa acontece no estoque de acabados, nunca em filamento — a venda é
// de produto pronto.
type UseCase struct {
	sales    repository.SaleRepository
	finished repository.FinishedGoodRepository
	products repository.ProductRepository
}

// New constrói o caso de uso de vendas.
func New(
	sales repository.SaleRepository,
	finished repository.FinishedGoodRepository,
	products repository.ProductRepository,
) *UseCase {
	return &UseCase{sales: sales, finished: finished, products: products}
}

// ItemInput é uma linha do pedido de venda.
type ItemInput struct {
	ProductID string
	Qty       int
}

// Create valida o pedido inteiro contra o estoque de acabados, congela os
// preços da receita e só então grava: baixa nos acabados primeiro, venda
// por último. Qualquer falta rejeita a venda completa antes de mutar.
func (uc *UseCase) Create(ctx context.Context, items []ItemInput, paymentMethod string) (*entity.Sale, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	switch paymentMethod {
	case "", entity.PaymentPix, entity.PaymentCash, entity.PaymentCard, entity.PaymentOther:
	default:
		return nil, domain.ErrInvalidInput
	}

	goods, err := uc.finished.List()
	if err != nil {
		return nil, err
	}
	byProduct := make(map[string]*entity.FinishedGood, len(goods))
	for _, g := range goods {
		byProduct[g.ProductID] = g
	}

	now := time.Now()
	total := decimal.Zero
	saleItems := make([]entity.SaleItem, 0, len(items))
	touched := make(map[string]*entity.FinishedGood)

	for _, item := range items {
		if item.Qty <= 0 {
			return nil, domain.ErrInvalidInput
		}
		good := byProduct[item.ProductID]
		if good == nil {
			return nil, domain.ErrNotFound
		}
		if good.Quantity < item.Qty {
			return nil, domain.ErrConflict
		}
		prod, err := uc.products.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		unitPrice := decimal.Zero
		if prod != nil {
			unitPrice = prod.PriceBRL
		}

		good.Quantity -= item.Qty
		good.UpdatedAt = now
		touched[good.ID] = good

		saleItems = append(saleItems, entity.SaleItem{
			ProductID:   item.ProductID,
			ProductName: good.Name,
			Qty:         item.Qty,
			UnitPrice:   unitPrice,
		})
		total = total.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	for _, g := range touched {
		if g.Quantity == 0 {
			if err := uc.finished.Remove(g.ID); err != nil {
				return nil, err
			}
			continue
		}
		if err := uc.finished.Upsert(g); err != nil {
			return nil, err
		}
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Items:         saleItems,
		Total:         total,
		PaymentMethod: paymentMethod,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.sales.Upsert(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// List devolve as vendas, mais recentes primeiro.
func (uc *UseCase) List() ([]*entity.Sale, error) {
	all, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return all, nil
}
