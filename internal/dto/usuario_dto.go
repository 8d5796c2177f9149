package dto

type CriarUsuarioRequest struct {
	Nome       string   `json:"nome" validate:"required,min=2,max=120"`
	CPF        string   `json:"cpf" validate:"required"`
	Senha      string   `json:"senha" validate:"required,min=6"`
	TipoAcesso string   `json:"tipo_acesso" validate:"required,oneof=MAXIMO ADMINISTRADOR COORDENADOR"`
	Filiais    []string `json:"filiais" validate:"omitempty,dive,uuid"`
}

type AtualizarUsuarioRequest struct {
	Nome       *string   `json:"nome" validate:"omitempty,min=2,max=120"`
	Senha      *string   `json:"senha" validate:"omitempty,min=6"`
	TipoAcesso *string   `json:"tipo_acesso" validate:"omitempty,oneof=MAXIMO ADMINISTRADOR COORDENADOR"`
	Filiais    *[]string `json:"filiais" validate:"omitempty,dive,uuid"`
	Ativo      *bool     `json:"ativo"`
}

// UsuarioResponse never carries the password hash.
type UsuarioResponse struct {
	ID         string      `json:"id"`
	Nome       string      `json:"nome"`
	CPF        string      `json:"cpf"`
	TipoAcesso string      `json:"tipo_acesso"`
	Filiais    []FilialRef `json:"filiais"`
	Ativo      bool        `json:"ativo"`
}
