package service_test

import (
	"context"
	"testing"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMovimento(t *testing.T) (*fakeProdutoRepo, *fakeMovimentoRepo, service.MovimentoService) {
	t.Helper()
	produtos := newFakeProdutoRepo()
	movimentos := newFakeMovimentoRepo()
	produtos.movimentos = movimentos
	movimentos.produtos = produtos
	return produtos, movimentos, service.NewMovimentoService(produtos, movimentos)
}

func seedProduto(t *testing.T, repo *fakeProdutoRepo, nome string, qtd int, compra, venda float64) *model.Produto {
	t.Helper()
	p := &model.Produto{
		Nome:          nome,
		Qtd:           qtd,
		ValorCompra:   decimal.NewFromFloat(compra),
		ValorVenda:    decimal.NewFromFloat(venda),
		EstoqueMinimo: 5,
		Ativo:         true,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestRegistrarEntradaAumentaEstoque(t *testing.T) {
	produtos, movimentos, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	resp, err := svc.RegistrarEntrada(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: 5,
		Observacao: "Reposição",
	})

	require.NoError(t, err)
	assert.Equal(t, 15, produtos.produtos[p.ID].Qtd)
	assert.Equal(t, model.TipoEntrada, resp.Tipo)
	// Sem valor explícito, entrada usa o preço de compra do cadastro.
	assert.Equal(t, decimal.NewFromFloat(8).String(), resp.ValorUnitario.String())
	assert.Equal(t, decimal.NewFromFloat(40).String(), resp.ValorTotal.String())
	require.Len(t, movimentos.movimentos, 1)
	assert.Equal(t, "Reposição", movimentos.movimentos[0].Observacao)
}

func TestRegistrarSaidaDiminuiEstoque(t *testing.T) {
	produtos, movimentos, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	resp, err := svc.RegistrarSaida(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, produtos.produtos[p.ID].Qtd)
	// Sem valor explícito, saída usa o preço de venda.
	assert.Equal(t, decimal.NewFromFloat(15).String(), resp.ValorUnitario.String())
	require.Len(t, movimentos.movimentos, 1)
	assert.Equal(t, model.TipoSaida, movimentos.movimentos[0].Tipo)
}

func TestRegistrarSaidaEstoqueInsuficiente(t *testing.T) {
	produtos, movimentos, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 3, 8, 15)

	_, err := svc.RegistrarSaida(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: 4,
	})

	assert.ErrorIs(t, err, service.ErrEstoqueInsuficiente)
	// Nada mudou: nem o estoque nem o livro de movimentos.
	assert.Equal(t, 3, produtos.produtos[p.ID].Qtd)
	assert.Empty(t, movimentos.movimentos)
}

func TestRegistrarSaidaTudoQueHa(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 4, 8, 15)

	_, err := svc.RegistrarSaida(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: 4,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, produtos.produtos[p.ID].Qtd)
}

func TestRegistrarMovimentoValorExplicito(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	valor := decimal.NewFromFloat(7.5)
	resp, err := svc.RegistrarEntrada(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:     p.ID.String(),
		Quantidade:    2,
		ValorUnitario: &valor,
	})

	require.NoError(t, err)
	assert.Equal(t, valor.String(), resp.ValorUnitario.String())
}

func TestRegistrarMovimentoProdutoInexistente(t *testing.T) {
	_, _, svc := setupMovimento(t)

	_, err := svc.RegistrarEntrada(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:  uuid.NewString(),
		Quantidade: 1,
	})

	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRegistrarMovimentoQuantidadeInvalida(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	_, err := svc.RegistrarEntrada(context.Background(), dto.RegistrarMovimentoRequest{
		ProdutoID:  p.ID.String(),
		Quantidade: 0,
	})

	assert.True(t, service.IsValidacao(err))
}

func TestAjustarEstoquePositivoViraEntrada(t *testing.T) {
	produtos, movimentos, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	resp, err := svc.AjustarEstoque(context.Background(), p.ID, 3, "")

	require.NoError(t, err)
	assert.Equal(t, model.TipoEntrada, resp.Tipo)
	assert.Equal(t, 13, produtos.produtos[p.ID].Qtd)
	require.Len(t, movimentos.movimentos, 1)
	assert.Equal(t, "Ajuste de estoque", movimentos.movimentos[0].Observacao)
}

func TestAjustarEstoqueNegativoViraSaida(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	resp, err := svc.AjustarEstoque(context.Background(), p.ID, -4, "Quebra")

	require.NoError(t, err)
	assert.Equal(t, model.TipoSaida, resp.Tipo)
	assert.Equal(t, 4, resp.Quantidade)
	assert.Equal(t, 6, produtos.produtos[p.ID].Qtd)
}

func TestAjustarEstoqueNegativoRespeitaSaldo(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 2, 8, 15)

	_, err := svc.AjustarEstoque(context.Background(), p.ID, -5, "Quebra")

	assert.ErrorIs(t, err, service.ErrEstoqueInsuficiente)
	assert.Equal(t, 2, produtos.produtos[p.ID].Qtd)
}

func TestAjustarEstoqueDeltaZero(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	p := seedProduto(t, produtos, "Café", 10, 8, 15)

	_, err := svc.AjustarEstoque(context.Background(), p.ID, 0, "")

	assert.True(t, service.IsValidacao(err))
}

func TestListarFiltraPorProdutoETipo(t *testing.T) {
	produtos, _, svc := setupMovimento(t)
	a := seedProduto(t, produtos, "Café", 10, 8, 15)
	b := seedProduto(t, produtos, "Chá", 10, 4, 9)

	mustMov := func(tipo, pid string, qtd int) {
		req := dto.RegistrarMovimentoRequest{ProdutoID: pid, Quantidade: qtd}
		var err error
		if tipo == model.TipoEntrada {
			_, err = svc.RegistrarEntrada(context.Background(), req)
		} else {
			_, err = svc.RegistrarSaida(context.Background(), req)
		}
		require.NoError(t, err)
	}
	mustMov(model.TipoEntrada, a.ID.String(), 5)
	mustMov(model.TipoSaida, a.ID.String(), 2)
	mustMov(model.TipoSaida, b.ID.String(), 1)

	resp, err := svc.Listar(context.Background(), dto.MovimentoFilter{ProdutoID: &a.ID, Tipo: model.TipoSaida})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, a.ID.String(), resp.Data[0].ProdutoID)
	assert.Equal(t, model.TipoSaida, resp.Data[0].Tipo)
}
