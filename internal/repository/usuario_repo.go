package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	FindByCPF(ctx context.Context, cpf string) (*model.Usuario, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Usuario, int64, error)
	Update(ctx context.Context, u *model.Usuario) error
	ReplaceFiliais(ctx context.Context, u *model.Usuario, filiais []model.Filial) error
	SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Filiais").First(&u, id).Error
	return &u, err
}

func (r *usuarioRepo) FindByCPF(ctx context.Context, cpf string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Preload("Filiais").Where("cpf = ?", cpf).First(&u).Error
	return &u, err
}

func (r *usuarioRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Usuario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Usuario{}).Preload("Filiais")
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{
		"nome":        "nome",
		"cpf":         "cpf",
		"tipo_acesso": "tipo_acesso",
	})
	if lq.Filial != "" {
		q = q.Where("id IN (?)",
			r.db.Table("usuario_filiais").Select("usuario_id").Where("filial_id = ?", lq.Filial))
	} else if len(lq.FiliaisPermitidas) > 0 {
		q = q.Where("id IN (?)",
			r.db.Table("usuario_filiais").Select("usuario_id").Where("filial_id IN ?", lq.FiliaisPermitidas))
	}
	return paginar[model.Usuario](q, lq, "nome ASC")
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) ReplaceFiliais(ctx context.Context, u *model.Usuario, filiais []model.Filial) error {
	return r.db.WithContext(ctx).Model(u).Association("Filiais").Replace(filiais)
}

func (r *usuarioRepo) SetAtivo(ctx context.Context, id uuid.UUID, ativo bool) error {
	return r.db.WithContext(ctx).Model(&model.Usuario{}).Where("id = ?", id).Update("ativo", ativo).Error
}
