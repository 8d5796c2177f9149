package dto

// TokenRequest is the credential exchange body for POST /api/token/.
// The login identifier is the user's CPF.
type TokenRequest struct {
	CPF   string `json:"cpf" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

// TokenResponse carries the access/refresh pair.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}
