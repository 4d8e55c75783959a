package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement directions.
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
)

// Movimento is an immutable stock ledger entry. Movements are NEVER updated
// or deleted after creation — corrections post a compensating movement.
type Movimento struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo          string          `gorm:"type:varchar(10);not null"` // entrada | saida
	Quantidade    int             `gorm:"not null"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observacao    string
	CreatedAt     time.Time `gorm:"index"`

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

// ValorTotal is the line total: quantidade × valor unitário.
func (m *Movimento) ValorTotal() decimal.Decimal {
	return m.ValorUnitario.Mul(decimal.NewFromInt(int64(m.Quantidade)))
}
