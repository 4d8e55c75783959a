package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa session states.
const (
	StatusAberto  = "aberto"
	StatusFechado = "fechado"
)

// Caixa represents one cash register operating session.
// State machine: aberto → fechado (terminal, no reopen).
// A partial unique index enforces at most one open session system-wide
// (see infra.applySchemaPatches).
type Caixa struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DataAbertura       time.Time        `gorm:"not null;index"`
	DataFechamento     *time.Time
	SaldoInicial       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	// SaldoFinal is the running balance frozen at close; nil while open.
	SaldoFinal         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status             string           `gorm:"type:varchar(20);not null;default:'aberto'"`
	Observacao         *string
	ObservacaoAbertura *string
	UsuarioAberturaID  *uuid.UUID       `gorm:"type:uuid"`

	Movimentos []MovimentoCaixa `gorm:"foreignKey:CaixaID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's pluralization (caixas is fine, but keep explicit
// parity with the movement table below).
func (Caixa) TableName() string { return "caixas" }

// TotalEntradas sums the entrada movements loaded on the session.
func (c *Caixa) TotalEntradas() decimal.Decimal {
	total := decimal.Zero
	for _, m := range c.Movimentos {
		if m.Tipo == TipoEntrada {
			total = total.Add(m.Valor)
		}
	}
	return total
}

// TotalSaidas sums the saida movements loaded on the session.
func (c *Caixa) TotalSaidas() decimal.Decimal {
	total := decimal.Zero
	for _, m := range c.Movimentos {
		if m.Tipo == TipoSaida {
			total = total.Add(m.Valor)
		}
	}
	return total
}

// SaldoCalculado recomputes the running balance from the movement ledger.
// Never cached as mutable state.
func (c *Caixa) SaldoCalculado() decimal.Decimal {
	return c.SaldoInicial.Add(c.TotalEntradas()).Sub(c.TotalSaidas())
}

// SaldoAtual is the frozen closing balance for closed sessions, or the
// recomputed running balance while open.
func (c *Caixa) SaldoAtual() decimal.Decimal {
	if c.Status == StatusFechado && c.SaldoFinal != nil {
		return *c.SaldoFinal
	}
	return c.SaldoCalculado()
}

// MovimentoCaixa is an immutable event in the cash register ledger, child of
// a session. Deleted only in cascade with its session (administrative cleanup).
type MovimentoCaixa struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo           string          `gorm:"type:varchar(10);not null"` // entrada | saida
	Categoria      string          `gorm:"type:varchar(50);not null"` // venda | compra | despesa | receita | ...
	Descricao      string          `gorm:"not null"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FormaPagamento *string         `gorm:"type:varchar(50)"`
	CreatedAt      time.Time       `gorm:"index"`
}

func (MovimentoCaixa) TableName() string { return "movimentos_caixa" }
