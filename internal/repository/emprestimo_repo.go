package repository

import (
	"context"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmprestimoRepository interface {
	CreateTx(tx *gorm.DB, e *model.Emprestimo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Emprestimo, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Emprestimo, int64, error)
	Update(ctx context.Context, e *model.Emprestimo) error
	UpdateTx(tx *gorm.DB, e *model.Emprestimo) error
	CountAbertosPorFuncionario(ctx context.Context, funcionarioID uuid.UUID) (int64, error)
	// ListVencidos returns open loans whose expected return date passed asOf.
	ListVencidos(ctx context.Context, asOf time.Time) ([]model.Emprestimo, error)
	DB() *gorm.DB
}

type emprestimoRepo struct{ db *gorm.DB }

func NewEmprestimoRepository(db *gorm.DB) EmprestimoRepository { return &emprestimoRepo{db: db} }

func (r *emprestimoRepo) DB() *gorm.DB { return r.db }

func (r *emprestimoRepo) CreateTx(tx *gorm.DB, e *model.Emprestimo) error {
	return tx.Create(e).Error
}

func (r *emprestimoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Emprestimo, error) {
	var e model.Emprestimo
	err := r.db.WithContext(ctx).
		Preload("Ferramenta.Deposito").Preload("Funcionario").
		First(&e, id).Error
	return &e, err
}

func (r *emprestimoRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Emprestimo, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Emprestimo{}).
		Preload("Ferramenta").Preload("Funcionario")
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{"nome": "nome"})
	if lq.Filial != "" {
		q = q.Where("ferramenta_id IN (?)",
			r.db.Model(&model.Ferramenta{}).Select("ferramentas.id").
				Joins("JOIN depositos ON depositos.id = ferramentas.deposito_id").
				Where("depositos.filial_id = ?", lq.Filial))
	} else if len(lq.FiliaisPermitidas) > 0 {
		q = q.Where("ferramenta_id IN (?)",
			r.db.Model(&model.Ferramenta{}).Select("ferramentas.id").
				Joins("JOIN depositos ON depositos.id = ferramentas.deposito_id").
				Where("depositos.filial_id IN ?", lq.FiliaisPermitidas))
	}
	return paginar[model.Emprestimo](q, lq, "data_inicio DESC")
}

func (r *emprestimoRepo) Update(ctx context.Context, e *model.Emprestimo) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *emprestimoRepo) UpdateTx(tx *gorm.DB, e *model.Emprestimo) error {
	return tx.Save(e).Error
}

func (r *emprestimoRepo) CountAbertosPorFuncionario(ctx context.Context, funcionarioID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Emprestimo{}).
		Where("funcionario_id = ? AND ativo = true AND data_fim IS NULL", funcionarioID).
		Count(&n).Error
	return n, err
}

func (r *emprestimoRepo) ListVencidos(ctx context.Context, asOf time.Time) ([]model.Emprestimo, error) {
	var es []model.Emprestimo
	err := r.db.WithContext(ctx).
		Preload("Ferramenta").Preload("Funcionario").
		Where("ativo = true AND data_fim IS NULL AND data_prevista IS NOT NULL AND data_prevista < ?", asOf).
		Find(&es).Error
	return es, err
}
