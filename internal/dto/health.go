package dto

type HealthResponseDTO struct {
	Status      string `json:"status" example:"OK"`
	StoreStatus string `json:"storeStatus" example:"connected"`
}

type WebhookResponseDTO struct {
	Received bool `json:"received" example:"true"`
}
