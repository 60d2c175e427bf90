package models

// SeasonResponse is a concrete type for BattlePassSeason responses (for Swagger)
type SeasonResponse struct {
	Data    *BattlePassSeason `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// ProgressionResponse is a concrete type for UserProgression responses (for Swagger)
type ProgressionResponse struct {
	Data    *UserProgression `json:"data,omitempty"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ClaimResponse is a concrete type for ClaimRecord responses (for Swagger)
type ClaimResponse struct {
	Data    *ClaimRecord `json:"data,omitempty"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// PurchaseResponse is a concrete type for PurchaseResult responses (for Swagger)
type PurchaseResponse struct {
	Data    *PurchaseResult `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// BalanceResponse is a concrete type for PointsBalance responses (for Swagger)
type BalanceResponse struct {
	Data    *PointsBalance `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}
