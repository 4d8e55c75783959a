package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarMovimentoRequest covers both entrada and saida postings.
// ValorUnitario nil means "use the product's cadastro price" (compra on
// entrada, venda on saida).
type RegistrarMovimentoRequest struct {
	ProdutoID     string           `json:"produto_id"     validate:"required,uuid"`
	Quantidade    int              `json:"quantidade"     validate:"required,gt=0"`
	ValorUnitario *decimal.Decimal `json:"valor_unitario" validate:"omitempty"`
	Observacao    string           `json:"observacao"`
}

type MovimentoFilter struct {
	ProdutoID  *uuid.UUID
	Tipo       string
	DataInicio *time.Time
	DataFim    *time.Time
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentoResponse struct {
	ID            string          `json:"id"`
	ProdutoID     string          `json:"produto_id"`
	ProdutoNome   string          `json:"produto_nome"`
	Tipo          string          `json:"tipo"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	ValorTotal    decimal.Decimal `json:"valor_total"`
	Observacao    string          `json:"observacao"`
	Data          string          `json:"data"`
}

type MovimentoListResponse struct {
	Data  []MovimentoResponse `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}
