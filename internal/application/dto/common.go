package dto

// ErrorResponse corpo de erro HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// MissingG aparece só em faltas de filamento ("faltam Xg").
	MissingG float64 `json:"missingG,omitempty"`
}
