package dto

type CriarFuncionarioRequest struct {
	Nome      string   `json:"nome" form:"nome" validate:"required,min=2,max=120"`
	CPF       string   `json:"cpf" form:"cpf" validate:"required"`
	Matricula string   `json:"matricula" form:"matricula" validate:"required,min=1,max=40"`
	SetorID   *string  `json:"setor_id" form:"setor_id" validate:"omitempty,uuid"`
	CargoID   *string  `json:"cargo_id" form:"cargo_id" validate:"omitempty,uuid"`
	Filiais   []string `json:"filiais" form:"filiais" validate:"omitempty,dive,uuid"`
}

type AtualizarFuncionarioRequest struct {
	Nome      *string   `json:"nome" form:"nome" validate:"omitempty,min=2,max=120"`
	CPF       *string   `json:"cpf" form:"cpf"`
	Matricula *string   `json:"matricula" form:"matricula" validate:"omitempty,min=1,max=40"`
	SetorID   *string   `json:"setor_id" form:"setor_id" validate:"omitempty,uuid"`
	CargoID   *string   `json:"cargo_id" form:"cargo_id" validate:"omitempty,uuid"`
	Filiais   *[]string `json:"filiais" form:"filiais" validate:"omitempty,dive,uuid"`
	Ativo     *bool     `json:"ativo" form:"ativo"`
}

// FilialRef is the compact branch reference embedded in responses.
type FilialRef struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

type FuncionarioResponse struct {
	ID        string      `json:"id"`
	Nome      string      `json:"nome"`
	CPF       string      `json:"cpf"`
	Matricula string      `json:"matricula"`
	SetorID   *string     `json:"setor_id"`
	SetorNome *string     `json:"setor_nome"`
	CargoID   *string     `json:"cargo_id"`
	CargoNome *string     `json:"cargo_nome"`
	Filiais   []FilialRef `json:"filiais"`
	FotoURL   *string     `json:"foto_url"`
	Ativo     bool        `json:"ativo"`
}
