package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type AuthResponse struct {
	UserID   int     `json:"user_id"`
	Username string  `json:"username"`
	IsAdmin  bool    `json:"is_admin"`
	Iat      float64 `json:"iat"`
	Expiry   float64 `json:"expiry"`
}
