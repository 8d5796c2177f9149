package dto

type CriarManutencaoRequest struct {
	Nome         string  `json:"nome" validate:"required,min=2,max=120"`
	FerramentaID string  `json:"ferramenta_id" validate:"required,uuid"`
	Tipo         string  `json:"tipo" validate:"required,oneof=PREVENTIVA CORRETIVA"`
	DataInicio   string  `json:"data_inicio" validate:"required"`
	Observacoes  *string `json:"observacoes"`
}

// AtualizarManutencaoRequest: tipo is immutable after creation, closing goes
// through /finalizar/.
type AtualizarManutencaoRequest struct {
	Nome        *string `json:"nome" validate:"omitempty,min=2,max=120"`
	Observacoes *string `json:"observacoes"`
}

type ManutencaoResponse struct {
	ID             string  `json:"id"`
	Nome           string  `json:"nome"`
	FerramentaID   string  `json:"ferramenta_id"`
	FerramentaNome string  `json:"ferramenta_nome"`
	Tipo           string  `json:"tipo"`
	DataInicio     string  `json:"data_inicio"`
	DataFim        *string `json:"data_fim"`
	Observacoes    *string `json:"observacoes"`
	Ativo          bool    `json:"ativo"`
}
