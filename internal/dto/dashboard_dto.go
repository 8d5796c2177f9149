package dto

import "github.com/shopspring/decimal"

// DashboardResponse aggregates counts for the overview screen, optionally
// scoped to one filial.
type DashboardResponse struct {
	Filiais             int64           `json:"filiais"`
	Depositos           int64           `json:"depositos"`
	Funcionarios        int64           `json:"funcionarios"`
	Ferramentas         int64           `json:"ferramentas"`
	Disponiveis         int64           `json:"ferramentas_disponiveis"`
	Emprestadas         int64           `json:"ferramentas_emprestadas"`
	EmManutencao        int64           `json:"ferramentas_em_manutencao"`
	Inativas            int64           `json:"ferramentas_inativas"`
	EmprestimosAbertos  int64           `json:"emprestimos_abertos"`
	ManutencoesAbertas  int64           `json:"manutencoes_abertas"`
	ValorTotalAquisicao decimal.Decimal `json:"valor_total_aquisicao"`
}
