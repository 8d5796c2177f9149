package dto

type CriarEmprestimoRequest struct {
	Nome          string  `json:"nome" validate:"required,min=2,max=120"`
	FerramentaID  string  `json:"ferramenta_id" validate:"required,uuid"`
	FuncionarioID string  `json:"funcionario_id" validate:"required,uuid"`
	DataInicio    string  `json:"data_inicio" validate:"required"`
	DataPrevista  *string `json:"data_prevista"`
	Observacoes   *string `json:"observacoes"`
}

// AtualizarEmprestimoRequest edits only descriptive fields; tool and employee
// references are fixed at creation, and closing goes through /finalizar/.
type AtualizarEmprestimoRequest struct {
	Nome         *string `json:"nome" validate:"omitempty,min=2,max=120"`
	DataPrevista *string `json:"data_prevista"`
	Observacoes  *string `json:"observacoes"`
}

// FinalizarRequest closes a loan or maintenance, releasing the tool.
type FinalizarRequest struct {
	DataFim string `json:"data_fim" validate:"required"`
}

type EmprestimoResponse struct {
	ID              string  `json:"id"`
	Nome            string  `json:"nome"`
	FerramentaID    string  `json:"ferramenta_id"`
	FerramentaNome  string  `json:"ferramenta_nome"`
	FuncionarioID   string  `json:"funcionario_id"`
	FuncionarioNome string  `json:"funcionario_nome"`
	DataInicio      string  `json:"data_inicio"`
	DataPrevista    *string `json:"data_prevista"`
	DataFim         *string `json:"data_fim"`
	Observacoes     *string `json:"observacoes"`
	Ativo           bool    `json:"ativo"`
}
