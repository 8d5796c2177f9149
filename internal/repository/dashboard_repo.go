package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository runs the aggregate queries behind /api/dashboard/.
// filial is an optional UUID string; empty means all branches.
type DashboardRepository interface {
	Aggregate(ctx context.Context, filial string) (*dto.DashboardResponse, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) Aggregate(ctx context.Context, filial string) (*dto.DashboardResponse, error) {
	var out dto.DashboardResponse
	db := r.db.WithContext(ctx)

	ferramentas := func() *gorm.DB {
		q := db.Model(&model.Ferramenta{})
		if filial != "" {
			q = q.Where("deposito_id IN (?)",
				r.db.Model(&model.Deposito{}).Select("id").Where("filial_id = ?", filial))
		}
		return q
	}

	filiais := db.Model(&model.Filial{}).Where("ativo = true")
	if filial != "" {
		filiais = filiais.Where("id = ?", filial)
	}
	if err := filiais.Count(&out.Filiais).Error; err != nil {
		return nil, err
	}

	depositos := db.Model(&model.Deposito{}).Where("ativo = true")
	if filial != "" {
		depositos = depositos.Where("filial_id = ?", filial)
	}
	if err := depositos.Count(&out.Depositos).Error; err != nil {
		return nil, err
	}

	funcionarios := db.Model(&model.Funcionario{}).Where("ativo = true")
	if filial != "" {
		funcionarios = funcionarios.Where("id IN (?)",
			r.db.Table("funcionario_filiais").Select("funcionario_id").Where("filial_id = ?", filial))
	}
	if err := funcionarios.Count(&out.Funcionarios).Error; err != nil {
		return nil, err
	}

	if err := ferramentas().Count(&out.Ferramentas).Error; err != nil {
		return nil, err
	}
	porEstado := map[model.EstadoFerramenta]*int64{
		model.EstadoDisponivel:   &out.Disponiveis,
		model.EstadoEmprestada:   &out.Emprestadas,
		model.EstadoEmManutencao: &out.EmManutencao,
		model.EstadoInativa:      &out.Inativas,
	}
	for estado, dest := range porEstado {
		if err := ferramentas().Where("estado = ?", estado).Count(dest).Error; err != nil {
			return nil, err
		}
	}

	var valor decimal.NullDecimal
	if err := ferramentas().Select("SUM(valor_aquisicao)").Scan(&valor).Error; err != nil {
		return nil, err
	}
	if valor.Valid {
		out.ValorTotalAquisicao = valor.Decimal
	}

	emprestimos := db.Model(&model.Emprestimo{}).Where("ativo = true AND data_fim IS NULL")
	manutencoes := db.Model(&model.Manutencao{}).Where("ativo = true AND data_fim IS NULL")
	if filial != "" {
		emFilial := r.db.Model(&model.Ferramenta{}).Select("ferramentas.id").
			Joins("JOIN depositos ON depositos.id = ferramentas.deposito_id").
			Where("depositos.filial_id = ?", filial)
		emprestimos = emprestimos.Where("ferramenta_id IN (?)", emFilial)
		manutencoes = manutencoes.Where("ferramenta_id IN (?)", emFilial)
	}
	if err := emprestimos.Count(&out.EmprestimosAbertos).Error; err != nil {
		return nil, err
	}
	if err := manutencoes.Count(&out.ManutencoesAbertas).Error; err != nil {
		return nil, err
	}

	return &out, nil
}
