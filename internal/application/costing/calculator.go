package costing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dihegorc/impressao3d-manager/internal/domain/entity"
)

// Input é tudo que a calculadora precisa: receita, snapshot do estoque
// (para preço por grama), catálogo de acessórios e parâmetros globais.
// A função é pura — nada aqui é mutado.
type Input struct {
	Product     *entity.Product
	Yield       int             // unidades acabadas produzidas pelo lote
	SalesPrice  decimal.Decimal // preço de venda praticado (lucro/margem)
	Spools      []*entity.Filament
	Accessories []*entity.Accessory
	Settings    *entity.AppSettings
}

// Analysis é o detalhamento de custo do lote e a precificação derivada.
type Analysis struct {
	BatchMaterial     decimal.Decimal `json:"batchMaterial"`
	BatchEnergy       decimal.Decimal `json:"batchEnergy"`
	BatchDepreciation decimal.Decimal `json:"batchDepreciation"`
	BatchFixed        decimal.Decimal `json:"batchFixed"`
	BatchFailures     decimal.Decimal `json:"batchFailures"`
	BatchAccessories  decimal.Decimal `json:"batchAccessories"`
	BatchTotal        decimal.Decimal `json:"batchTotal"`

	TotalTimeHours float64 `json:"totalTimeHours"`
	Yield          int     `json:"yield"`

	UnitCost           decimal.Decimal `json:"unitCost"`
	SuggestedRetail    decimal.Decimal `json:"suggestedRetail"`
	SuggestedWholesale decimal.Decimal `json:"suggestedWholesale"`
	Profit             decimal.Decimal `json:"profit"`
	MarginPct          decimal.Decimal `json:"marginPct"`
}

// Calculate computa o custo do lote mesa a mesa e soma:
//
//	A. material  — gramas × preço/grama do carretel casado por grupo
//	B. energia   — horas × kW × custo do kWh
//	C. depreciação — (valor da impressora / vida útil) × horas
//	D. custo fixo  — (fixo mensal / horas por mês) × horas
//	E. falhas    — % sobre material+energia+depreciação; o custo fixo fica
//	               de fora porque uma impressão perdida não gasta overhead
//	               administrativo
//
// Acessórios entram como total do lote (a quantidade na receita JÁ é o
// total — não multiplicar pelo rendimento). Receita sem carretel casado
// precifica material a zero em vez de falhar: o material pode ainda não
// ter sido comprado.
func Calculate(in Input) *Analysis {
	s := in.Settings
	yield := in.Yield
	if yield < 1 {
		yield = 1
	}

	batchMaterial := decimal.Zero
	batchEnergy := decimal.Zero
	batchDepreciation := decimal.Zero
	batchFixed := decimal.Zero
	batchFailures := decimal.Zero
	var totalHours float64

	failureFactor := decimal.NewFromFloat(s.FailureRatePct / 100)

	for _, plate := range in.Product.Plates {
		hours := plate.EstimatedMinutes / 60
		totalHours += hours
		dHours := decimal.NewFromFloat(hours)

		// A. Material
		plateMaterial := decimal.Zero
		for _, req := range plate.Filaments {
			ppg := pricePerGram(req, in.Spools)
			plateMaterial = plateMaterial.Add(decimal.NewFromFloat(req.Grams).Mul(ppg))
		}
		batchMaterial = batchMaterial.Add(plateMaterial)

		// B. Energia (tempo × potência)
		plateEnergy := decimal.NewFromFloat(hours * s.PowerWatts / 1000).Mul(s.EnergyCostKwh)
		batchEnergy = batchEnergy.Add(plateEnergy)

		// C. Depreciação (tempo / vida útil)
		plateDepreciation := decimal.Zero
		if s.LifespanHours > 0 {
			plateDepreciation = s.PrinterPrice.Div(decimal.NewFromFloat(s.LifespanHours)).Mul(dHours)
		}
		batchDepreciation = batchDepreciation.Add(plateDepreciation)

		// D. Custo fixo (tempo / horas do mês)
		if s.MonthlyPrintHours > 0 {
			batchFixed = batchFixed.Add(
				s.MonthlyFixedCost.Div(decimal.NewFromFloat(s.MonthlyPrintHours)).Mul(dHours))
		}

		// E. Falhas (% sobre material + energia + depreciação)
		failBase := plateMaterial.Add(plateEnergy).Add(plateDepreciation)
		batchFailures = batchFailures.Add(failBase.Mul(failureFactor))
	}

	// Acessórios: custo unitário do catálogo × quantidade total do lote.
	batchAccessories := decimal.Zero
	for _, req := range in.Product.Accessories {
		batchAccessories = batchAccessories.Add(
			accessoryCost(req.Name, in.Accessories).Mul(decimal.NewFromInt(int64(req.Quantity))))
	}

	batchTotal := batchMaterial.
		Add(batchEnergy).
		Add(batchDepreciation).
		Add(batchFixed).
		Add(batchFailures).
		Add(batchAccessories)

	unitCost := batchTotal.Div(decimal.NewFromInt(int64(yield)))

	markup := decimal.NewFromFloat(1 + s.DefaultMarkupPct/100)
	suggestedRetail := unitCost.Mul(markup)
	suggestedWholesale := suggestedRetail.Div(decimal.NewFromInt(2))

	profit := in.SalesPrice.Sub(unitCost)
	// Margem definida como zero (não NaN) quando não há preço de venda.
	marginPct := decimal.Zero
	if in.SalesPrice.IsPositive() {
		marginPct = profit.Div(in.SalesPrice).Mul(decimal.NewFromInt(100))
	}

	return &Analysis{
		BatchMaterial:      batchMaterial,
		BatchEnergy:        batchEnergy,
		BatchDepreciation:  batchDepreciation,
		BatchFixed:         batchFixed,
		BatchFailures:      batchFailures,
		BatchAccessories:   batchAccessories,
		BatchTotal:         batchTotal,
		TotalTimeHours:     totalHours,
		Yield:              yield,
		UnitCost:           unitCost,
		SuggestedRetail:    suggestedRetail,
		SuggestedWholesale: suggestedWholesale,
		Profit:             profit,
		MarginPct:          marginPct,
	}
}

// pricePerGram casa o requisito com um carretel por chave de grupo;
// requisito sem marca aceita qualquer marca do material+cor. Sem carretel
// casado o preço é zero.
func pricePerGram(req entity.FilamentRequirement, spools []*entity.Filament) decimal.Decimal {
	for _, f := range spools {
		if req.Matches(f) {
			return f.PricePerGram()
		}
	}
	return decimal.Zero
}

func accessoryCost(name string, catalog []*entity.Accessory) decimal.Decimal {
	for _, a := range catalog {
		if strings.EqualFold(strings.TrimSpace(a.Name), strings.TrimSpace(name)) {
			return a.UnitCost
		}
	}
	return decimal.Zero
}
