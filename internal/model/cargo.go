package model

import (
	"time"

	"github.com/google/uuid"
)

// Cargo is a job title referenced by employees.
type Cargo struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Descricao *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cargo) TableName() string { return "cargos" }
