package model

import (
	"time"

	"github.com/google/uuid"
)

// Funcionario is an employee who may borrow tools. Setor and Cargo are
// optional relations; Filiais is many-to-many.
type Funcionario struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string     `gorm:"index;not null"`
	CPF       string     `gorm:"column:cpf;uniqueIndex;not null"`
	Matricula string     `gorm:"uniqueIndex;not null"`
	SetorID   *uuid.UUID `gorm:"type:uuid;index"`
	CargoID   *uuid.UUID `gorm:"type:uuid;index"`
	FotoPath  *string
	Ativo     bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Setor   *Setor   `gorm:"foreignKey:SetorID"`
	Cargo   *Cargo   `gorm:"foreignKey:CargoID"`
	Filiais []Filial `gorm:"many2many:funcionario_filiais"`
}

func (Funcionario) TableName() string { return "funcionarios" }
