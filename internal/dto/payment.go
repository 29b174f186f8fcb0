package dto

type PaymentRequestDTO struct {
	Username   string `json:"username" example:"alice"`
	FullName   string `json:"fullName" example:"Alice Liddell"`
	CardNumber string `json:"cardNumber" example:"4242424242424242"`
	Expiry     string `json:"expiry" example:"12/27"`
	CVV        string `json:"cvv" example:"123"`
	Amount     string `json:"amount" example:"12.34"`
}

type PaymentResponseDTO struct {
	Success   bool   `json:"success"`
	Message   string `json:"message" example:"Payment initiated successfully"`
	Reference string `json:"reference" example:"5b0c2c3e-6c1f-4d0e-9a59-0d5b1a1f2f5e"`
	Status    string `json:"status" example:"Pending"`
}

type TransactionDTO struct {
	Reference   string `json:"reference" example:"5b0c2c3e-6c1f-4d0e-9a59-0d5b1a1f2f5e"`
	FullName    string `json:"fullName" example:"Alice Liddell"`
	Card        string `json:"card" example:"**** **** **** 4242"`
	Expiry      string `json:"expiry" example:"12/27"`
	Amount      string `json:"amount" example:"12.34"`
	Status      string `json:"status" example:"Success"`
	SubmittedAt string `json:"submittedAt" example:"2024-05-01T12:00:00Z"`
}

type TransactionsResponseDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
}
