package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EstadoFerramenta is the server-authoritative tool state. Transitions happen
// only through loan/maintenance flows and desativar/reativar actions.
type EstadoFerramenta string

const (
	EstadoDisponivel   EstadoFerramenta = "DISPONIVEL"
	EstadoEmprestada   EstadoFerramenta = "EMPRESTADA"
	EstadoEmManutencao EstadoFerramenta = "EM_MANUTENCAO"
	EstadoInativa      EstadoFerramenta = "INATIVA"
)

// Ferramenta is a loanable physical asset.
type Ferramenta struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string          `gorm:"index;not null"`
	NumeroSerie    string          `gorm:"uniqueIndex;not null"`
	DataAquisicao  time.Time       `gorm:"not null"`
	ValorAquisicao decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descricao      *string
	FotoPath       *string
	Estado         EstadoFerramenta `gorm:"type:varchar(20);index;not null;default:'DISPONIVEL'"`
	DepositoID     uuid.UUID        `gorm:"type:uuid;index;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Deposito *Deposito `gorm:"foreignKey:DepositoID"`
}

func (Ferramenta) TableName() string { return "ferramentas" }

// Editavel reports whether direct edits and deactivation are permitted.
// Loaned or in-maintenance tools stay locked until the open record closes.
func (f *Ferramenta) Editavel() bool { return f.Estado == EstadoDisponivel }

// Bloqueada reports whether the tool is tied to an open loan or maintenance.
func (f *Ferramenta) Bloqueada() bool {
	return f.Estado == EstadoEmprestada || f.Estado == EstadoEmManutencao
}
