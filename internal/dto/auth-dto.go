package dto

type TokenObtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type TokenRefreshRequest struct {
	Refresh string `json:"refresh"`
}

type TokenRefreshResponse struct {
	Access string `json:"access"`
}

type AuthResponse struct {
	UserID    uint    `json:"user_id"`
	Username  string  `json:"username"`
	TokenType string  `json:"token_type"`
	Iat       float64 `json:"iat"`
	Expiry    float64 `json:"expiry"`
}
