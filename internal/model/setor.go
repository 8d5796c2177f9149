package model

import (
	"time"

	"github.com/google/uuid"
)

// Setor is an organizational sector referenced by employees.
type Setor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Descricao *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Setor) TableName() string { return "setores" }
