package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FuncionarioRepository interface {
	Create(ctx context.Context, f *model.Funcionario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Funcionario, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Funcionario, error)
	FindByMatricula(ctx context.Context, matricula string) (*model.Funcionario, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Funcionario, int64, error)
	Update(ctx context.Context, f *model.Funcionario) error
	ReplaceFiliais(ctx context.Context, f *model.Funcionario, filiais []model.Filial) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

type funcionarioRepo struct{ db *gorm.DB }

func NewFuncionarioRepository(db *gorm.DB) FuncionarioRepository { return &funcionarioRepo{db: db} }

func (r *funcionarioRepo) Create(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *funcionarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Preload("Setor").Preload("Cargo").Preload("Filiais").First(&f, id).Error
	return &f, err
}

func (r *funcionarioRepo) FindByCPF(ctx context.Context, cpf string) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&f).Error
	return &f, err
}

func (r *funcionarioRepo) FindByMatricula(ctx context.Context, matricula string) (*model.Funcionario, error) {
	var f model.Funcionario
	err := r.db.WithContext(ctx).Where("matricula = ?", matricula).First(&f).Error
	return &f, err
}

func (r *funcionarioRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Funcionario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Funcionario{}).
		Preload("Setor").Preload("Cargo").Preload("Filiais")
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{
		"nome":      "nome",
		"cpf":       "cpf",
		"matricula": "matricula",
	})
	if lq.Filial != "" {
		q = q.Where("id IN (?)",
			r.db.Table("funcionario_filiais").Select("funcionario_id").Where("filial_id = ?", lq.Filial))
	} else if len(lq.FiliaisPermitidas) > 0 {
		q = q.Where("id IN (?)",
			r.db.Table("funcionario_filiais").Select("funcionario_id").Where("filial_id IN ?", lq.FiliaisPermitidas))
	}
	return paginar[model.Funcionario](q, lq, "nome ASC")
}

func (r *funcionarioRepo) Update(ctx context.Context, f *model.Funcionario) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *funcionarioRepo) ReplaceFiliais(ctx context.Context, f *model.Funcionario, filiais []model.Filial) error {
	return r.db.WithContext(ctx).Model(f).Association("Filiais").Replace(filiais)
}

func (r *funcionarioRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Funcionario{}).Where("id = ?", id).Update("ativo", ativo).Error
}
