package dto

type CriarDepositoRequest struct {
	Nome     string `json:"nome" validate:"required,min=2,max=120"`
	FilialID string `json:"filial_id" validate:"required,uuid"`
}

type AtualizarDepositoRequest struct {
	Nome     *string `json:"nome" validate:"omitempty,min=2,max=120"`
	FilialID *string `json:"filial_id" validate:"omitempty,uuid"`
	Ativo    *bool   `json:"ativo"`
}

// DepositoResponse denormalizes the parent filial name for display.
type DepositoResponse struct {
	ID         string `json:"id"`
	Nome       string `json:"nome"`
	FilialID   string `json:"filial_id"`
	FilialNome string `json:"filial_nome"`
	Ativo      bool   `json:"ativo"`
}
