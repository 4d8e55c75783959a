package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a catalog item. Qtd is mutated exclusively through stock
// movements (see service.MovimentoService) — never by direct edits.
type Produto struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome           string          `gorm:"index;not null"`
	Qtd            int             `gorm:"not null;default:0"`
	ValorCompra    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ValorVenda     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	EstoqueMinimo  int             `gorm:"not null;default:5"`
	Ativo          bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Movimentos []Movimento `gorm:"foreignKey:ProdutoID"`
}

// EstoqueBaixo reports whether the product is at or below its minimum.
func (p *Produto) EstoqueBaixo() bool { return p.Qtd <= p.EstoqueMinimo }

// MargemLucro returns (venda - compra) / compra * 100, or zero when the
// purchase price is zero.
func (p *Produto) MargemLucro() decimal.Decimal {
	if p.ValorCompra.IsZero() {
		return decimal.Zero
	}
	return p.ValorVenda.Sub(p.ValorCompra).
		Div(p.ValorCompra).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}
