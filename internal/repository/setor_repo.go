package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SetorRepository interface {
	Create(ctx context.Context, s *model.Setor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Setor, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Setor, int64, error)
	Update(ctx context.Context, s *model.Setor) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

type setorRepo struct{ db *gorm.DB }

func NewSetorRepository(db *gorm.DB) SetorRepository { return &setorRepo{db: db} }

func (r *setorRepo) Create(ctx context.Context, s *model.Setor) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *setorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Setor, error) {
	var s model.Setor
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *setorRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Setor, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Setor{})
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{"nome": "nome", "descricao": "descricao"})
	return paginar[model.Setor](q, lq, "nome ASC")
}

func (r *setorRepo) Update(ctx context.Context, s *model.Setor) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *setorRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Setor{}).Where("id = ?", id).Update("ativo", ativo).Error
}
