package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CargoRepository interface {
	Create(ctx context.Context, c *model.Cargo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cargo, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Cargo, int64, error)
	Update(ctx context.Context, c *model.Cargo) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

type cargoRepo struct{ db *gorm.DB }

func NewCargoRepository(db *gorm.DB) CargoRepository { return &cargoRepo{db: db} }

func (r *cargoRepo) Create(ctx context.Context, c *model.Cargo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cargoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cargo, error) {
	var c model.Cargo
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cargoRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Cargo, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cargo{})
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{"nome": "nome", "descricao": "descricao"})
	return paginar[model.Cargo](q, lq, "nome ASC")
}

func (r *cargoRepo) Update(ctx context.Context, c *model.Cargo) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cargoRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Cargo{}).Where("id = ?", id).Update("ativo", ativo).Error
}
