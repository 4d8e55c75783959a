package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Capability order: operador ⊂ gerente ⊂ admin.
const (
	TipoAdmin    = "admin"
	TipoGerente  = "gerente"
	TipoOperador = "operador"
)

// Usuario stores system users with role-based access.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	SenhaHash    string    `gorm:"not null"`
	NomeCompleto string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Tipo         string    `gorm:"type:varchar(20);not null"` // admin | gerente | operador
	Ativo        bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UltimoAcesso *time.Time
}

// IsGerente reports manager-or-above privileges.
func (u *Usuario) IsGerente() bool { return u.Tipo == TipoAdmin || u.Tipo == TipoGerente }

// IsAdmin reports admin privileges.
func (u *Usuario) IsAdmin() bool { return u.Tipo == TipoAdmin }
