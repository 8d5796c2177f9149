package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FerramentaRepository interface {
	Create(ctx context.Context, f *model.Ferramenta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ferramenta, error)
	FindByNumeroSerie(ctx context.Context, serie string) (*model.Ferramenta, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Ferramenta, int64, error)
	Update(ctx context.Context, f *model.Ferramenta) error
	UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoFerramenta) error
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoFerramenta) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ferramentaRepo struct{ db *gorm.DB }

func NewFerramentaRepository(db *gorm.DB) FerramentaRepository { return &ferramentaRepo{db: db} }

func (r *ferramentaRepo) DB() *gorm.DB { return r.db }

func (r *ferramentaRepo) Create(ctx context.Context, f *model.Ferramenta) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *ferramentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ferramenta, error) {
	var f model.Ferramenta
	err := r.db.WithContext(ctx).Preload("Deposito.Filial").First(&f, id).Error
	return &f, err
}

func (r *ferramentaRepo) FindByNumeroSerie(ctx context.Context, serie string) (*model.Ferramenta, error) {
	var f model.Ferramenta
	err := r.db.WithContext(ctx).Where("numero_serie = ?", serie).First(&f).Error
	return &f, err
}

func (r *ferramentaRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Ferramenta, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Ferramenta{}).Preload("Deposito.Filial")

	// Tools have no boolean flag: INATIVA plays the role of ativo=false.
	switch {
	case lq.SomenteAtivos:
		q = q.Where("estado <> ?", model.EstadoInativa)
	case lq.SomenteInativos:
		q = q.Where("estado = ?", model.EstadoInativa)
	case lq.Ativo != nil && *lq.Ativo:
		q = q.Where("estado <> ?", model.EstadoInativa)
	case lq.Ativo != nil && !*lq.Ativo:
		q = q.Where("estado = ?", model.EstadoInativa)
	}

	q = aplicarBusca(q, lq, "nome", map[string]string{
		"nome":         "nome",
		"numero_serie": "numero_serie",
		"estado":       "estado",
	})
	if lq.Filial != "" {
		q = q.Where("deposito_id IN (?)",
			r.db.Model(&model.Deposito{}).Select("id").Where("filial_id = ?", lq.Filial))
	} else if len(lq.FiliaisPermitidas) > 0 {
		q = q.Where("deposito_id IN (?)",
			r.db.Model(&model.Deposito{}).Select("id").Where("filial_id IN ?", lq.FiliaisPermitidas))
	}
	return paginar[model.Ferramenta](q, lq, "nome ASC")
}

func (r *ferramentaRepo) Update(ctx context.Context, f *model.Ferramenta) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *ferramentaRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado model.EstadoFerramenta) error {
	return r.db.WithContext(ctx).Model(&model.Ferramenta{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *ferramentaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado model.EstadoFerramenta) error {
	return tx.Model(&model.Ferramenta{}).Where("id = ?", id).Update("estado", estado).Error
}
