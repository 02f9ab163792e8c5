package models

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type CartResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    []CartItem `json:"data"`
}

type CartChanged struct {
	Event      string     `json:"event"`
	Products   []CartItem `json:"products"`
	ItemCount  int        `json:"item_count"`
	OccurredAt string     `json:"occurred_at"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
