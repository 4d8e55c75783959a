package dto

import "github.com/shopspring/decimal"

// Reporting DTOs — all derived values, recomputed on every call.

type ProdutoMaisVendido struct {
	Nome       string `json:"nome"`
	Quantidade int    `json:"quantidade"`
}

type DashboardResponse struct {
	TotalProdutos        int64                `json:"total_produtos"`
	ProdutosEstoqueBaixo int64                `json:"produtos_estoque_baixo"`
	VendasHoje           decimal.Decimal      `json:"vendas_hoje"`
	ComprasHoje          decimal.Decimal      `json:"compras_hoje"`
	LucroHoje            decimal.Decimal      `json:"lucro_hoje"`
	SaldoCaixa           decimal.Decimal      `json:"saldo_caixa"`
	CaixaStatus          string               `json:"caixa_status"`
	ProdutosMaisVendidos []ProdutoMaisVendido `json:"produtos_mais_vendidos"`
}

type RelatorioEstoqueResponse struct {
	Produtos             []ProdutoResponse `json:"produtos"`
	TotalValorEstoque    decimal.Decimal   `json:"total_valor_estoque"`
	TotalValorVenda      decimal.Decimal   `json:"total_valor_venda"`
	LucroPotencial       decimal.Decimal   `json:"lucro_potencial"`
	ProdutosEstoqueBaixo int               `json:"produtos_estoque_baixo"`
}

type RelatorioMovimentosResponse struct {
	DataInicio         string              `json:"data_inicio"`
	DataFim            string              `json:"data_fim"`
	TotalEntradas      decimal.Decimal     `json:"total_entradas"`
	TotalSaidas        decimal.Decimal     `json:"total_saidas"`
	Lucro              decimal.Decimal     `json:"lucro"`
	QuantidadeEntradas int                 `json:"quantidade_entradas"`
	QuantidadeSaidas   int                 `json:"quantidade_saidas"`
	Movimentos         []MovimentoResponse `json:"movimentos"`
}

type FluxoDiarioResponse struct {
	Data              string                   `json:"data"`
	Vendas            decimal.Decimal          `json:"vendas"`
	Compras           decimal.Decimal          `json:"compras"`
	LucroBruto        decimal.Decimal          `json:"lucro_bruto"`
	EntradasCaixa     decimal.Decimal          `json:"entradas_caixa"`
	SaidasCaixa       decimal.Decimal          `json:"saidas_caixa"`
	SaldoCaixa        decimal.Decimal          `json:"saldo_caixa"`
	MovimentosEstoque []MovimentoResponse      `json:"movimentos_estoque"`
	MovimentosCaixa   []MovimentoCaixaResponse `json:"movimentos_caixa"`
}
