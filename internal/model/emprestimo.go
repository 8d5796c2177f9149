package model

import (
	"time"

	"github.com/google/uuid"
)

// Emprestimo assigns one tool to one employee for a period of time.
// DataFim nil + Ativo true means the loan is still open.
type Emprestimo struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome          string    `gorm:"not null"`
	FerramentaID  uuid.UUID `gorm:"type:uuid;index;not null"`
	FuncionarioID uuid.UUID `gorm:"type:uuid;index;not null"`
	DataInicio    time.Time `gorm:"not null"`
	DataFim       *time.Time
	DataPrevista  *time.Time // expected return, drives overdue reminders
	Observacoes   *string
	Ativo         bool `gorm:"index;not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Ferramenta  *Ferramenta  `gorm:"foreignKey:FerramentaID"`
	Funcionario *Funcionario `gorm:"foreignKey:FuncionarioID"`
}

func (Emprestimo) TableName() string { return "emprestimos" }

// Aberto reports whether the loan is still ongoing.
func (e *Emprestimo) Aberto() bool { return e.Ativo && e.DataFim == nil }
