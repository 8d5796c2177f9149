package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FilialRepository interface {
	Create(ctx context.Context, f *model.Filial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Filial, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Filial, int64, error)
	Update(ctx context.Context, f *model.Filial) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
	// FerramentasBloqueantes returns the loaned / in-maintenance tools under
	// the filial that block its deactivation.
	FerramentasBloqueantes(ctx context.Context, id uuid.UUID) ([]model.Ferramenta, error)
}

type filialRepo struct{ db *gorm.DB }

func NewFilialRepository(db *gorm.DB) FilialRepository { return &filialRepo{db: db} }

func (r *filialRepo) Create(ctx context.Context, f *model.Filial) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *filialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Filial, error) {
	var f model.Filial
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *filialRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Filial, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Filial{})
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{"nome": "nome", "cidade": "cidade"})
	if lq.Filial != "" {
		q = q.Where("id = ?", lq.Filial)
	} else if len(lq.FiliaisPermitidas) > 0 {
		q = q.Where("id IN ?", lq.FiliaisPermitidas)
	}
	return paginar[model.Filial](q, lq, "nome ASC")
}

func (r *filialRepo) Update(ctx context.Context, f *model.Filial) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *filialRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Filial{}).Where("id = ?", id).Update("ativo", ativo).Error
}

func (r *filialRepo) FerramentasBloqueantes(ctx context.Context, id uuid.UUID) ([]model.Ferramenta, error) {
	var fs []model.Ferramenta
	err := r.db.WithContext(ctx).
		Where("estado IN ?", []model.EstadoFerramenta{model.EstadoEmprestada, model.EstadoEmManutencao}).
		Where("deposito_id IN (?)", r.db.Model(&model.Deposito{}).Select("id").Where("filial_id = ?", id)).
		Find(&fs).Error
	return fs, err
}
