package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoManutencao is immutable after creation.
type TipoManutencao string

const (
	ManutencaoPreventiva TipoManutencao = "PREVENTIVA"
	ManutencaoCorretiva  TipoManutencao = "CORRETIVA"
)

// Manutencao is a service record against one tool. DataFim nil + Ativo true
// means the tool is still in the shop.
type Manutencao struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome         string         `gorm:"not null"`
	FerramentaID uuid.UUID      `gorm:"type:uuid;index;not null"`
	Tipo         TipoManutencao `gorm:"type:varchar(20);not null"`
	DataInicio   time.Time      `gorm:"not null"`
	DataFim      *time.Time
	Observacoes  *string
	Ativo        bool `gorm:"index;not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Ferramenta *Ferramenta `gorm:"foreignKey:FerramentaID"`
}

func (Manutencao) TableName() string { return "manutencoes" }

// Aberta reports whether the maintenance is still ongoing.
func (m *Manutencao) Aberta() bool { return m.Ativo && m.DataFim == nil }
