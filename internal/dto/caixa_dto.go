package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
	Observacao   *string         `json:"observacao"`
}

type FecharCaixaRequest struct {
	Observacao *string `json:"observacao"`
}

type MovimentoCaixaRequest struct {
	CaixaID        string          `json:"caixa_id"        validate:"required,uuid"`
	Tipo           string          `json:"tipo"            validate:"required,oneof=entrada saida"`
	Categoria      string          `json:"categoria"       validate:"required,min=1"`
	Descricao      string          `json:"descricao"       validate:"required,min=1"`
	Valor          decimal.Decimal `json:"valor"           validate:"required,gt=0"`
	FormaPagamento *string         `json:"forma_pagamento"`
}

type CaixaFilter struct {
	DataInicio *time.Time
	DataFim    *time.Time
	Page       int
	Limit      int
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentoCaixaResponse struct {
	ID             string          `json:"id"`
	CaixaID        string          `json:"caixa_id"`
	Tipo           string          `json:"tipo"`
	Categoria      string          `json:"categoria"`
	Descricao      string          `json:"descricao"`
	Valor          decimal.Decimal `json:"valor"`
	FormaPagamento *string         `json:"forma_pagamento"`
	Data           string          `json:"data"`
}

type CaixaResponse struct {
	ID             string                   `json:"id"`
	DataAbertura   string                   `json:"data_abertura"`
	DataFechamento *string                  `json:"data_fechamento"`
	SaldoInicial   decimal.Decimal          `json:"saldo_inicial"`
	SaldoFinal     *decimal.Decimal         `json:"saldo_final"`
	SaldoAtual     decimal.Decimal          `json:"saldo_atual"`
	TotalEntradas  decimal.Decimal          `json:"total_entradas"`
	TotalSaidas    decimal.Decimal          `json:"total_saidas"`
	Status         string                   `json:"status"`
	Observacao     *string                  `json:"observacao"`
	Movimentos     []MovimentoCaixaResponse `json:"movimentos,omitempty"`
}

type CaixaListResponse struct {
	Data  []CaixaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
