package entity

import "github.com/shopspring/decimal"

// AppSettings são os parâmetros globais de custo usados pela calculadora.
// Valores em R$; horas e percentuais como números simples.
type AppSettings struct {
	// Energia
	PowerWatts    float64         `json:"powerWatts"`    // potência da impressora (W)
	EnergyCostKwh decimal.Decimal `json:"energyCostKwh"` // custo do kWh (R$)

	// Depreciação
	PrinterPrice  decimal.Decimal `json:"printerPrice"`  // valor da impressora (R$)
	LifespanHours float64         `json:"lifespanHours"` // vida útil (horas)

	// Custos fixos administrativos
	MonthlyFixedCost  decimal.Decimal `json:"monthlyFixedCost"`  // total de custos fixos (R$/mês)
	MonthlyPrintHours float64         `json:"monthlyPrintHours"` // capacidade produtiva estimada (horas/mês)

	// Outros
	FailureRatePct   float64 `json:"failureRatePct"`   // taxa de falha (%)
	DefaultMarkupPct float64 `json:"defaultMarkupPct"` // markup padrão (%)
}

// DefaultSettings devolve os parâmetros padrão da operação.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		PowerWatts:        350,
		EnergyCostKwh:     decimal.RequireFromString("0.97"),
		PrinterPrice:      decimal.NewFromInt(4500),
		LifespanHours:     20000,
		MonthlyFixedCost:  decimal.NewFromInt(300),
		MonthlyPrintHours: 200,
		FailureRatePct:    10,
		DefaultMarkupPct:  200,
	}
}
