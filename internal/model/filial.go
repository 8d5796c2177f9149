package model

import (
	"time"

	"github.com/google/uuid"
)

// Filial represents a physical site that owns warehouses and is referenced
// by employees and coordinator users.
type Filial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"uniqueIndex;not null"`
	Cidade    string    `gorm:"not null"`
	Ativo     bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Depositos []Deposito `gorm:"foreignKey:FilialID"`
}

func (Filial) TableName() string { return "filiais" }
