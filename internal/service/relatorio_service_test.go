package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRelatorio(t *testing.T) (*fakeProdutoRepo, *fakeMovimentoRepo, *fakeCaixaRepo, service.RelatorioService) {
	t.Helper()
	produtos := newFakeProdutoRepo()
	movimentos := newFakeMovimentoRepo()
	caixas := newFakeCaixaRepo()
	produtos.movimentos = movimentos
	movimentos.produtos = produtos
	return produtos, movimentos, caixas, service.NewRelatorioService(produtos, movimentos, caixas)
}

func seedMovimento(t *testing.T, repo *fakeMovimentoRepo, produtoID uuid.UUID, tipo string, qtd int, valor float64) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.Movimento{
		ProdutoID:     produtoID,
		Tipo:          tipo,
		Quantidade:    qtd,
		ValorUnitario: decimal.NewFromFloat(valor),
	}))
}

func TestDashboardSemCaixaAberto(t *testing.T) {
	produtos, movimentos, _, svc := setupRelatorio(t)
	cafe := seedProduto(t, produtos, "Café", 10, 8, 12)
	seedProduto(t, produtos, "Chá", 2, 3, 5) // abaixo do estoque mínimo

	seedMovimento(t, movimentos, cafe.ID, model.TipoEntrada, 4, 8)  // 32
	seedMovimento(t, movimentos, cafe.ID, model.TipoSaida, 2, 12)   // 24

	resp, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalProdutos)
	assert.Equal(t, int64(1), resp.ProdutosEstoqueBaixo)
	assert.Equal(t, "24", resp.VendasHoje.String())
	assert.Equal(t, "32", resp.ComprasHoje.String())
	assert.Equal(t, "-8", resp.LucroHoje.String())
	assert.Equal(t, model.StatusFechado, resp.CaixaStatus)
	assert.True(t, resp.SaldoCaixa.IsZero())
	require.Len(t, resp.ProdutosMaisVendidos, 1)
	assert.Equal(t, "Café", resp.ProdutosMaisVendidos[0].Nome)
	assert.Equal(t, 2, resp.ProdutosMaisVendidos[0].Quantidade)
}

func TestDashboardComCaixaAberto(t *testing.T) {
	_, _, caixas, svc := setupRelatorio(t)
	c := &model.Caixa{
		DataAbertura: time.Now().UTC(),
		SaldoInicial: decimal.NewFromInt(100),
		Status:       model.StatusAberto,
	}
	require.NoError(t, caixas.Create(context.Background(), c))
	require.NoError(t, caixas.CreateMovimento(context.Background(), &model.MovimentoCaixa{
		CaixaID:   c.ID,
		Tipo:      model.TipoEntrada,
		Categoria: "venda",
		Descricao: "Venda avulsa",
		Valor:     decimal.NewFromInt(40),
	}))

	resp, err := svc.Dashboard(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.StatusAberto, resp.CaixaStatus)
	assert.Equal(t, "140", resp.SaldoCaixa.String())
}

func TestRelatorioEstoque(t *testing.T) {
	produtos, _, _, svc := setupRelatorio(t)
	seedProduto(t, produtos, "Café", 10, 5, 8)
	seedProduto(t, produtos, "Chá", 2, 3, 4) // estoque baixo

	resp, err := svc.Estoque(context.Background())

	require.NoError(t, err)
	assert.Len(t, resp.Produtos, 2)
	assert.Equal(t, "56", resp.TotalValorEstoque.String()) // 10×5 + 2×3
	assert.Equal(t, "88", resp.TotalValorVenda.String())   // 10×8 + 2×4
	assert.Equal(t, "32", resp.LucroPotencial.String())
	assert.Equal(t, 1, resp.ProdutosEstoqueBaixo)
}

func TestRelatorioEstoqueSomenteAtivos(t *testing.T) {
	produtos, _, _, svc := setupRelatorio(t)
	seedProduto(t, produtos, "Café", 10, 5, 8)
	inativo := seedProduto(t, produtos, "Descontinuado", 100, 9, 20)
	require.NoError(t, produtos.SoftDelete(context.Background(), inativo.ID))

	resp, err := svc.Estoque(context.Background())

	require.NoError(t, err)
	assert.Len(t, resp.Produtos, 1)
	assert.Equal(t, "50", resp.TotalValorEstoque.String())
	assert.Equal(t, "80", resp.TotalValorVenda.String())
}

func TestRelatorioMovimentosPeriodoPadrao(t *testing.T) {
	produtos, movimentos, _, svc := setupRelatorio(t)
	cafe := seedProduto(t, produtos, "Café", 10, 8, 12)

	seedMovimento(t, movimentos, cafe.ID, model.TipoEntrada, 4, 10) // 40
	seedMovimento(t, movimentos, cafe.ID, model.TipoSaida, 2, 25)   // 50

	resp, err := svc.Movimentos(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.QuantidadeEntradas)
	assert.Equal(t, 1, resp.QuantidadeSaidas)
	assert.Equal(t, "40", resp.TotalEntradas.String())
	assert.Equal(t, "50", resp.TotalSaidas.String())
	assert.Equal(t, "10", resp.Lucro.String())
	assert.Len(t, resp.Movimentos, 2)
}

func TestJanelaPeriodo(t *testing.T) {
	agora := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)

	inicio, fim, ok := service.JanelaPeriodo("dia", agora)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), inicio)
	assert.Equal(t, agora, fim)

	inicio, _, ok = service.JanelaPeriodo("semana", agora)
	require.True(t, ok)
	assert.Equal(t, agora.AddDate(0, 0, -7), inicio)

	inicio, _, ok = service.JanelaPeriodo("mes", agora)
	require.True(t, ok)
	assert.Equal(t, agora.AddDate(0, 0, -30), inicio)

	_, _, ok = service.JanelaPeriodo("", agora)
	assert.False(t, ok)
	_, _, ok = service.JanelaPeriodo("ano", agora)
	assert.False(t, ok)
}

func TestRelatorioMovimentosJanelaSemanal(t *testing.T) {
	produtos, movimentos, _, svc := setupRelatorio(t)
	cafe := seedProduto(t, produtos, "Café", 10, 8, 12)

	seedMovimento(t, movimentos, cafe.ID, model.TipoSaida, 1, 12)
	seedMovimento(t, movimentos, cafe.ID, model.TipoSaida, 2, 12)
	// Só o segundo fica dentro da janela de 7 dias.
	movimentos.movimentos[0].CreatedAt = time.Now().UTC().AddDate(0, 0, -10)
	movimentos.movimentos[1].CreatedAt = time.Now().UTC().AddDate(0, 0, -3)

	inicio, fim, ok := service.JanelaPeriodo("semana", time.Now())
	require.True(t, ok)

	resp, err := svc.Movimentos(context.Background(), &inicio, &fim)

	require.NoError(t, err)
	assert.Equal(t, 1, resp.QuantidadeSaidas)
	assert.Equal(t, "24", resp.TotalSaidas.String())
}

func TestRelatorioMovimentosPeriodoExplicito(t *testing.T) {
	produtos, movimentos, _, svc := setupRelatorio(t)
	cafe := seedProduto(t, produtos, "Café", 10, 8, 12)
	seedMovimento(t, movimentos, cafe.ID, model.TipoSaida, 1, 12)

	// Janela inteira no passado: nada deve entrar no relatório.
	fim := time.Now().UTC().Add(-24 * time.Hour)
	inicio := fim.Add(-24 * time.Hour)

	resp, err := svc.Movimentos(context.Background(), &inicio, &fim)

	require.NoError(t, err)
	assert.Empty(t, resp.Movimentos)
	assert.True(t, resp.TotalSaidas.IsZero())
	assert.True(t, resp.Lucro.IsZero())
}

func TestFluxoDiario(t *testing.T) {
	produtos, movimentos, caixas, svc := setupRelatorio(t)
	cafe := seedProduto(t, produtos, "Café", 10, 8, 12)
	seedMovimento(t, movimentos, cafe.ID, model.TipoSaida, 3, 12)   // vendas 36
	seedMovimento(t, movimentos, cafe.ID, model.TipoEntrada, 5, 8)  // compras 40

	c := &model.Caixa{
		DataAbertura: time.Now().UTC(),
		SaldoInicial: decimal.NewFromInt(50),
		Status:       model.StatusAberto,
	}
	require.NoError(t, caixas.Create(context.Background(), c))
	require.NoError(t, caixas.CreateMovimento(context.Background(), &model.MovimentoCaixa{
		CaixaID:   c.ID,
		Tipo:      model.TipoEntrada,
		Categoria: "venda",
		Descricao: "Venda",
		Valor:     decimal.NewFromInt(36),
	}))
	require.NoError(t, caixas.CreateMovimento(context.Background(), &model.MovimentoCaixa{
		CaixaID:   c.ID,
		Tipo:      model.TipoSaida,
		Categoria: "despesa",
		Descricao: "Frete",
		Valor:     decimal.NewFromInt(10),
	}))

	resp, err := svc.FluxoDiario(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.Data)
	assert.Equal(t, "36", resp.Vendas.String())
	assert.Equal(t, "40", resp.Compras.String())
	assert.Equal(t, "-4", resp.LucroBruto.String())
	assert.Equal(t, "36", resp.EntradasCaixa.String())
	assert.Equal(t, "10", resp.SaidasCaixa.String())
	// Fluxo do dia, não saldo da sessão: o saldo inicial de 50 fica de fora.
	assert.Equal(t, "26", resp.SaldoCaixa.String())
	assert.Len(t, resp.MovimentosEstoque, 2)
	assert.Len(t, resp.MovimentosCaixa, 2)
}

func TestFluxoDiarioCaixaAbertoOntem(t *testing.T) {
	_, _, caixas, svc := setupRelatorio(t)
	c := &model.Caixa{
		DataAbertura: time.Now().UTC().Add(-24 * time.Hour),
		SaldoInicial: decimal.NewFromInt(200),
		Status:       model.StatusAberto,
	}
	require.NoError(t, caixas.Create(context.Background(), c))

	// Um movimento de ontem e um de hoje no mesmo caixa.
	require.NoError(t, caixas.CreateMovimento(context.Background(), &model.MovimentoCaixa{
		CaixaID:   c.ID,
		Tipo:      model.TipoEntrada,
		Categoria: "venda",
		Descricao: "Venda de ontem",
		Valor:     decimal.NewFromInt(80),
	}))
	caixas.movimentos[0].CreatedAt = time.Now().UTC().Add(-24 * time.Hour)
	require.NoError(t, caixas.CreateMovimento(context.Background(), &model.MovimentoCaixa{
		CaixaID:   c.ID,
		Tipo:      model.TipoEntrada,
		Categoria: "venda",
		Descricao: "Venda de hoje",
		Valor:     decimal.NewFromInt(50),
	}))

	resp, err := svc.FluxoDiario(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	assert.Equal(t, "50", resp.EntradasCaixa.String())
	assert.Equal(t, "50", resp.SaldoCaixa.String())
	require.Len(t, resp.MovimentosCaixa, 1)
	assert.Equal(t, "Venda de hoje", resp.MovimentosCaixa[0].Descricao)
}

func TestFluxoDiarioSemCaixaAberto(t *testing.T) {
	_, _, _, svc := setupRelatorio(t)

	resp, err := svc.FluxoDiario(context.Background(), time.Now().UTC())

	require.NoError(t, err)
	assert.True(t, resp.SaldoCaixa.IsZero())
	assert.Empty(t, resp.MovimentosCaixa)
}

func TestRelatorioCaixa(t *testing.T) {
	_, _, caixas, svc := setupRelatorio(t)

	_, err := svc.Caixa(context.Background(), nil)
	assert.ErrorIs(t, err, service.ErrNotFound)

	c := &model.Caixa{
		DataAbertura: time.Now().UTC(),
		SaldoInicial: decimal.NewFromInt(80),
		Status:       model.StatusAberto,
	}
	require.NoError(t, caixas.Create(context.Background(), c))

	resp, err := svc.Caixa(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, c.ID.String(), resp.ID)
	assert.Equal(t, "80", resp.SaldoAtual.String())

	porID, err := svc.Caixa(context.Background(), &c.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, porID.ID)

	inexistente := uuid.New()
	_, err = svc.Caixa(context.Background(), &inexistente)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
