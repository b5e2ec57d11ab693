package dto

// EnqueueRequest pedido de produção: units unidades acabadas do produto.
type EnqueueRequest struct {
	ProductID string `json:"productId"`
	Units     int    `json:"units"`
}

// ReorderRequest move o trabalho uma posição na direção dada.
type ReorderRequest struct {
	Direction string `json:"direction"` // up | down
}

// SaleItemRequest linha do pedido de venda.
type SaleItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CreateSaleRequest venda de produtos acabados.
type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"`
	PaymentMethod string            `json:"paymentMethod"`
}

// LoginRequest credenciais do operador.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse token de sessão.
type LoginResponse struct {
	Token string `json:"token"`
}
