package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Nome          string          `json:"nome"           validate:"required,min=1"`
	ValorCompra   decimal.Decimal `json:"valor_compra"   validate:"min=0"`
	ValorVenda    decimal.Decimal `json:"valor_venda"    validate:"min=0"`
	Qtd           int             `json:"qtd"            validate:"min=0"`
	EstoqueMinimo *int            `json:"estoque_minimo" validate:"omitempty,min=0"`
}

// AtualizarProdutoRequest is a partial update: nil/empty fields are skipped.
// Qtd is intentionally absent — stock changes only through movements.
type AtualizarProdutoRequest struct {
	Nome          *string          `json:"nome"           validate:"omitempty,min=1"`
	ValorCompra   *decimal.Decimal `json:"valor_compra"`
	ValorVenda    *decimal.Decimal `json:"valor_venda"`
	EstoqueMinimo *int             `json:"estoque_minimo" validate:"omitempty,min=0"`
}

type AjustarEstoqueRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo"`
}

type ProdutoFilter struct {
	Nome             string
	IncluirInativos  bool
	Page             int
	Limit            int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID            string          `json:"id"`
	Nome          string          `json:"nome"`
	Qtd           int             `json:"qtd"`
	ValorCompra   decimal.Decimal `json:"valor_compra"`
	ValorVenda    decimal.Decimal `json:"valor_venda"`
	EstoqueMinimo int             `json:"estoque_minimo"`
	EstoqueBaixo  bool            `json:"estoque_baixo"`
	MargemLucro   decimal.Decimal `json:"margem_lucro"`
	Ativo         bool            `json:"ativo"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
