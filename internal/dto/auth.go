package dto

type RegisterRequestDTO struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@x.com"`
	Password string `json:"password" example:"Str0ng!Pass"`
}

type LoginRequestDTO struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"Str0ng!Pass"`
}

// TokenResponseDTO is returned by register and login. The token is also sent in
// the Authorization header.
type TokenResponseDTO struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token"`
}
