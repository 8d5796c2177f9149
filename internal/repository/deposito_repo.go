package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepositoRepository interface {
	Create(ctx context.Context, d *model.Deposito) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Deposito, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Deposito, int64, error)
	Update(ctx context.Context, d *model.Deposito) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
	FerramentasBloqueantes(ctx context.Context, id uuid.UUID) ([]model.Ferramenta, error)
}

type depositoRepo struct{ db *gorm.DB }

func NewDepositoRepository(db *gorm.DB) DepositoRepository { return &depositoRepo{db: db} }

func (r *depositoRepo) Create(ctx context.Context, d *model.Deposito) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *depositoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Deposito, error) {
	var d model.Deposito
	err := r.db.WithContext(ctx).Preload("Filial").First(&d, id).Error
	return &d, err
}

func (r *depositoRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Deposito, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Deposito{}).Preload("Filial")
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{"nome": "nome"})
	if lq.Filial != "" {
		q = q.Where("filial_id = ?", lq.Filial)
	} else if len(lq.FiliaisPermitidas) > 0 {
		q = q.Where("filial_id IN ?", lq.FiliaisPermitidas)
	}
	return paginar[model.Deposito](q, lq, "nome ASC")
}

func (r *depositoRepo) Update(ctx context.Context, d *model.Deposito) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *depositoRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Deposito{}).Where("id = ?", id).Update("ativo", ativo).Error
}

func (r *depositoRepo) FerramentasBloqueantes(ctx context.Context, id uuid.UUID) ([]model.Ferramenta, error) {
	var fs []model.Ferramenta
	err := r.db.WithContext(ctx).
		Where("deposito_id = ?", id).
		Where("estado IN ?", []model.EstadoFerramenta{model.EstadoEmprestada, model.EstadoEmManutencao}).
		Find(&fs).Error
	return fs, err
}
