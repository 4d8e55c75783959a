package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVendaRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required,uuid"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
}

type RegistrarVendaRequest struct {
	Itens          []ItemVendaRequest `json:"itens"           validate:"required,min=1,dive"`
	FormaPagamento string             `json:"forma_pagamento" validate:"required,min=1"`
	Observacao     string             `json:"observacao"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVendaResponse struct {
	ProdutoID     string          `json:"produto_id"`
	Produto       string          `json:"produto"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type VendaResponse struct {
	Itens          []ItemVendaResponse `json:"itens"`
	Total          decimal.Decimal     `json:"total"`
	FormaPagamento string              `json:"forma_pagamento"`
	// CaixaID is set when the sale was posted to an open register;
	// nil means stock moved but no cash entry was recorded.
	CaixaID *string `json:"caixa_id"`
	Data    string  `json:"data"`
}
