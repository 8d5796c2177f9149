package dto

type CriarFilialRequest struct {
	Nome   string `json:"nome" validate:"required,min=2,max=120"`
	Cidade string `json:"cidade" validate:"required,min=2,max=120"`
}

type AtualizarFilialRequest struct {
	Nome   *string `json:"nome" validate:"omitempty,min=2,max=120"`
	Cidade *string `json:"cidade" validate:"omitempty,min=2,max=120"`
	Ativo  *bool   `json:"ativo"`
}

type FilialResponse struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Cidade string `json:"cidade"`
	Ativo  bool   `json:"ativo"`
}
