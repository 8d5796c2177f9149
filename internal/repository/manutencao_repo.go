package repository

import (
	"context"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ManutencaoRepository interface {
	CreateTx(tx *gorm.DB, m *model.Manutencao) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Manutencao, error)
	List(ctx context.Context, lq dto.ListQuery) ([]model.Manutencao, int64, error)
	Update(ctx context.Context, m *model.Manutencao) error
	UpdateTx(tx *gorm.DB, m *model.Manutencao) error
	DB() *gorm.DB
}

type manutencaoRepo struct{ db *gorm.DB }

func NewManutencaoRepository(db *gorm.DB) ManutencaoRepository { return &manutencaoRepo{db: db} }

func (r *manutencaoRepo) DB() *gorm.DB { return r.db }

func (r *manutencaoRepo) CreateTx(tx *gorm.DB, m *model.Manutencao) error {
	return tx.Create(m).Error
}

func (r *manutencaoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Manutencao, error) {
	var m model.Manutencao
	err := r.db.WithContext(ctx).Preload("Ferramenta.Deposito").First(&m, id).Error
	return &m, err
}

func (r *manutencaoRepo) List(ctx context.Context, lq dto.ListQuery) ([]model.Manutencao, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Manutencao{}).Preload("Ferramenta")
	q = aplicarAtivo(q, lq)
	q = aplicarBusca(q, lq, "nome", map[string]string{"nome": "nome", "tipo": "tipo"})
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
	return paginar[model.Manutencao](q, lq, "data_inicio DESC")
}

func (r *manutencaoRepo) Update(ctx context.Context, m *model.Manutencao) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *manutencaoRepo) UpdateTx(tx *gorm.DB, m *model.Manutencao) error {
	return tx.Save(m).Error
}
