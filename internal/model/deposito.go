package model

import (
	"time"

	"github.com/google/uuid"
)

// Deposito is a storage location inside a filial. Tools live in exactly one
// deposito; the filial name is denormalized into list responses for display.
type Deposito struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	FilialID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Filial      *Filial      `gorm:"foreignKey:FilialID"`
	Ferramentas []Ferramenta `gorm:"foreignKey:DepositoID"`
}

func (Deposito) TableName() string { return "depositos" }
