package entity

import "time"

// Estados de um trabalho de impressão na fila.
const (
	JobStatusQueued    = "queued"    // na fila
	JobStatusPrinting  = "printing"  // imprimindo
	JobStatusFinishing = "finishing" // retoques finais
	JobStatusReady     = "ready"     // pronto / estoque
)

// PrintJob é UMA execução de mesa enfileirada. Um pedido de N unidades de
// um produto com M mesas vira N×M trabalhos; as mesas de uma mesma unidade
// compartilham BatchID e o lote só conta como produto pronto quando todas
// as PlatesTotal mesas chegam a ready.
//
// O trabalho guarda um snapshot da mesa (Plate) para a finalização não
// depender de edições posteriores na receita.
type PrintJob struct {
	ID          string `json:"id"`
	BatchID     string `json:"batchId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"` // snapshot do nome na hora do enfileiramento
	PlateIndex  int    `json:"plateIndex"`
	Plate       Plate  `json:"plate"`
	PlatesTotal int    `json:"platesTotal"`

	RequiresFinishing bool   `json:"requiresFinishing,omitempty"`
	Status            string `json:"status"`

	// Fila: posições densas 1..N entre trabalhos ativos; zero depois de ready.
	QueuePosition int `json:"queuePosition"`

	EstimatedMinutes float64    `json:"estimatedMinutes"`
	Quantity         int        `json:"quantity"` // sempre 1: uma execução de mesa
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	FinishedAt       *time.Time `json:"finishedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Active informa se o trabalho ainda ocupa posição na fila.
func (j *PrintJob) Active() bool {
	return j.Status != JobStatusReady
}
