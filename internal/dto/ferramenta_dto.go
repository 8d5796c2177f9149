package dto

import "github.com/shopspring/decimal"

// Dates travel as "2006-01-02" strings and are parsed/validated in the
// service layer (not in the future, end >= start).

type CriarFerramentaRequest struct {
	Nome           string          `json:"nome" form:"nome" validate:"required,min=2,max=120"`
	NumeroSerie    string          `json:"numero_serie" form:"numero_serie" validate:"required,min=3,max=60"`
	DataAquisicao  string          `json:"data_aquisicao" form:"data_aquisicao" validate:"required"`
	ValorAquisicao decimal.Decimal `json:"valor_aquisicao" form:"valor_aquisicao"`
	Descricao      *string         `json:"descricao" form:"descricao"`
	DepositoID     string          `json:"deposito_id" form:"deposito_id" validate:"required,uuid"`
}

type AtualizarFerramentaRequest struct {
	Nome           *string          `json:"nome" form:"nome" validate:"omitempty,min=2,max=120"`
	NumeroSerie    *string          `json:"numero_serie" form:"numero_serie" validate:"omitempty,min=3,max=60"`
	DataAquisicao  *string          `json:"data_aquisicao" form:"data_aquisicao"`
	ValorAquisicao *decimal.Decimal `json:"valor_aquisicao" form:"valor_aquisicao"`
	Descricao      *string          `json:"descricao" form:"descricao"`
	DepositoID     *string          `json:"deposito_id" form:"deposito_id" validate:"omitempty,uuid"`
}

type FerramentaResponse struct {
	ID             string          `json:"id"`
	Nome           string          `json:"nome"`
	NumeroSerie    string          `json:"numero_serie"`
	DataAquisicao  string          `json:"data_aquisicao"`
	ValorAquisicao decimal.Decimal `json:"valor_aquisicao"`
	Descricao      *string         `json:"descricao"`
	FotoURL        *string         `json:"foto_url"`
	Estado         string          `json:"estado"`
	DepositoID     string          `json:"deposito_id"`
	DepositoNome   string          `json:"deposito_nome"`
	FilialID       string          `json:"filial_id"`
	FilialNome     string          `json:"filial_nome"`
}
