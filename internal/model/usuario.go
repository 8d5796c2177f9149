package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoAcesso is the closed three-tier privilege hierarchy.
// All permission checks go through the functions below — never compare the
// raw string at call sites.
type TipoAcesso string

const (
	AcessoMaximo        TipoAcesso = "MAXIMO"
	AcessoAdministrador TipoAcesso = "ADMINISTRADOR"
	AcessoCoordenador   TipoAcesso = "COORDENADOR"
)

// Valido reports whether t is one of the known tiers.
func (t TipoAcesso) Valido() bool {
	switch t {
	case AcessoMaximo, AcessoAdministrador, AcessoCoordenador:
		return true
	}
	return false
}

// nivel orders the hierarchy: MAXIMO > ADMINISTRADOR > COORDENADOR.
func (t TipoAcesso) nivel() int {
	switch t {
	case AcessoMaximo:
		return 3
	case AcessoAdministrador:
		return 2
	case AcessoCoordenador:
		return 1
	}
	return 0
}

// PodeGerenciarUsuarios: only ADMINISTRADOR and above manage accounts.
func (t TipoAcesso) PodeGerenciarUsuarios() bool { return t.nivel() >= AcessoAdministrador.nivel() }

// AcessoGlobal: MAXIMO and ADMINISTRADOR see every filial; COORDENADOR is
// scoped to their assigned set.
func (t TipoAcesso) AcessoGlobal() bool { return t.nivel() >= AcessoAdministrador.nivel() }

// PodeVerFilial checks filial visibility for a user with the given set.
func (t TipoAcesso) PodeVerFilial(filiais []uuid.UUID, filialID uuid.UUID) bool {
	if t.AcessoGlobal() {
		return true
	}
	for _, id := range filiais {
		if id == filialID {
			return true
		}
	}
	return false
}

// Usuario is a system account. Login credential is the CPF.
type Usuario struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome       string     `gorm:"not null"`
	CPF        string     `gorm:"column:cpf;uniqueIndex;not null"`
	SenhaHash  string     `gorm:"not null"`
	TipoAcesso TipoAcesso `gorm:"type:varchar(20);not null"`
	Ativo      bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Filiais is meaningful only for COORDENADOR (must be non-empty there).
	Filiais []Filial `gorm:"many2many:usuario_filiais"`
}

func (Usuario) TableName() string { return "usuarios" }
