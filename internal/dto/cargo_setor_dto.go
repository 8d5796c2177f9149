package dto

// Cargo and Setor share the same shape; each keeps its own types so the
// handlers and client schemas stay explicit about which entity they touch.

type CriarCargoRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2,max=120"`
	Descricao *string `json:"descricao"`
}

type AtualizarCargoRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,min=2,max=120"`
	Descricao *string `json:"descricao"`
	Ativo     *bool   `json:"ativo"`
}

type CargoResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Ativo     bool    `json:"ativo"`
}

type CriarSetorRequest struct {
	Nome      string  `json:"nome" validate:"required,min=2,max=120"`
	Descricao *string `json:"descricao"`
}

type AtualizarSetorRequest struct {
	Nome      *string `json:"nome" validate:"omitempty,min=2,max=120"`
	Descricao *string `json:"descricao"`
	Ativo     *bool   `json:"ativo"`
}

type SetorResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
	Ativo     bool    `json:"ativo"`
}
