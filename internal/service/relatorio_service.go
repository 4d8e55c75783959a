package service

import (
	"context"
	"errors"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RelatorioService produces derived views over the ledgers. Nothing here
// mutates state; every number is recomputed from the movement rows on each
// call, so reports can never disagree with the ledger.
type RelatorioService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	Estoque(ctx context.Context) (*dto.RelatorioEstoqueResponse, error)
	Movimentos(ctx context.Context, inicio, fim *time.Time) (*dto.RelatorioMovimentosResponse, error)
	FluxoDiario(ctx context.Context, dia time.Time) (*dto.FluxoDiarioResponse, error)
	Caixa(ctx context.Context, id *uuid.UUID) (*dto.CaixaResponse, error)
}

type relatorioService struct {
	produtos   repository.ProdutoRepository
	movimentos repository.MovimentoRepository
	caixas     repository.CaixaRepository
}

func NewRelatorioService(produtos repository.ProdutoRepository, movimentos repository.MovimentoRepository, caixas repository.CaixaRepository) RelatorioService {
	return &relatorioService{produtos: produtos, movimentos: movimentos, caixas: caixas}
}

func (s *relatorioService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	totalProdutos, err := s.produtos.CountAtivos(ctx)
	if err != nil {
		return nil, err
	}
	estoqueBaixo, err := s.produtos.CountEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}

	inicio, fim := hoje()
	movimentosHoje, err := s.movimentos.ListPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	vendas, compras := totaisPorTipo(movimentosHoje)

	resp := &dto.DashboardResponse{
		TotalProdutos:        totalProdutos,
		ProdutosEstoqueBaixo: estoqueBaixo,
		VendasHoje:           vendas,
		ComprasHoje:          compras,
		LucroHoje:            vendas.Sub(compras),
		SaldoCaixa:           decimal.Zero,
		CaixaStatus:          model.StatusFechado,
		ProdutosMaisVendidos: []dto.ProdutoMaisVendido{},
	}

	aberto, err := s.caixas.FindAberto(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		resp.SaldoCaixa = aberto.SaldoCalculado()
		resp.CaixaStatus = model.StatusAberto
	}

	top, err := s.movimentos.TopVendidos(ctx, time.Now().UTC().AddDate(0, 0, -7), 5)
	if err != nil {
		return nil, err
	}
	for _, t := range top {
		resp.ProdutosMaisVendidos = append(resp.ProdutosMaisVendidos, dto.ProdutoMaisVendido{
			Nome:       t.Nome,
			Quantidade: t.Quantidade,
		})
	}
	return resp, nil
}

// Estoque values the whole active catalog; pagination would silently drop
// products from the sums, so the query is unpaginated on purpose.
func (s *relatorioService) Estoque(ctx context.Context) (*dto.RelatorioEstoqueResponse, error) {
	produtos, err := s.produtos.ListAtivos(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioEstoqueResponse{
		Produtos:          make([]dto.ProdutoResponse, 0, len(produtos)),
		TotalValorEstoque: decimal.Zero,
		TotalValorVenda:   decimal.Zero,
	}
	for i := range produtos {
		p := &produtos[i]
		qtd := decimal.NewFromInt(int64(p.Qtd))
		resp.TotalValorEstoque = resp.TotalValorEstoque.Add(p.ValorCompra.Mul(qtd))
		resp.TotalValorVenda = resp.TotalValorVenda.Add(p.ValorVenda.Mul(qtd))
		if p.EstoqueBaixo() {
			resp.ProdutosEstoqueBaixo++
		}
		resp.Produtos = append(resp.Produtos, *produtoToResponse(p))
	}
	resp.LucroPotencial = resp.TotalValorVenda.Sub(resp.TotalValorEstoque)
	return resp, nil
}

// Movimentos aggregates the stock ledger over a period. When bounds are
// missing the period defaults to today, midnight UTC up to now.
func (s *relatorioService) Movimentos(ctx context.Context, inicio, fim *time.Time) (*dto.RelatorioMovimentosResponse, error) {
	ini, f := hoje()
	if inicio != nil {
		ini = inicio.UTC()
	}
	if fim != nil {
		f = fim.UTC()
	}

	movimentos, err := s.movimentos.ListPeriodo(ctx, ini, f)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioMovimentosResponse{
		DataInicio:    ini.Format("2006-01-02T15:04:05Z"),
		DataFim:       f.Format("2006-01-02T15:04:05Z"),
		TotalEntradas: decimal.Zero,
		TotalSaidas:   decimal.Zero,
		Movimentos:    make([]dto.MovimentoResponse, 0, len(movimentos)),
	}
	for i := range movimentos {
		m := &movimentos[i]
		switch m.Tipo {
		case model.TipoEntrada:
			resp.TotalEntradas = resp.TotalEntradas.Add(m.ValorTotal())
			resp.QuantidadeEntradas++
		case model.TipoSaida:
			resp.TotalSaidas = resp.TotalSaidas.Add(m.ValorTotal())
			resp.QuantidadeSaidas++
		}
		resp.Movimentos = append(resp.Movimentos, *movimentoToResponse(m))
	}
	resp.Lucro = resp.TotalSaidas.Sub(resp.TotalEntradas)
	return resp, nil
}

// FluxoDiario combines stock and cash activity for one calendar day. The cash
// side covers only the open session's movements dated that day, so a session
// left open overnight still reports today's postings under today. SaldoCaixa
// here is the day's net flow (entradas menos saídas), not the session balance.
func (s *relatorioService) FluxoDiario(ctx context.Context, dia time.Time) (*dto.FluxoDiarioResponse, error) {
	inicio := time.Date(dia.Year(), dia.Month(), dia.Day(), 0, 0, 0, 0, time.UTC)
	fim := inicio.AddDate(0, 0, 1)

	movimentos, err := s.movimentos.ListPeriodo(ctx, inicio, fim)
	if err != nil {
		return nil, err
	}
	vendas, compras := totaisPorTipo(movimentos)

	resp := &dto.FluxoDiarioResponse{
		Data:              inicio.Format("2006-01-02"),
		Vendas:            vendas,
		Compras:           compras,
		LucroBruto:        vendas.Sub(compras),
		EntradasCaixa:     decimal.Zero,
		SaidasCaixa:       decimal.Zero,
		SaldoCaixa:        decimal.Zero,
		MovimentosEstoque: make([]dto.MovimentoResponse, 0, len(movimentos)),
		MovimentosCaixa:   []dto.MovimentoCaixaResponse{},
	}
	for i := range movimentos {
		resp.MovimentosEstoque = append(resp.MovimentosEstoque, *movimentoToResponse(&movimentos[i]))
	}

	aberto, err := s.caixas.FindAberto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, nil
		}
		return nil, err
	}
	for j := range aberto.Movimentos {
		m := &aberto.Movimentos[j]
		if m.CreatedAt.Before(inicio) || !m.CreatedAt.Before(fim) {
			continue
		}
		switch m.Tipo {
		case model.TipoEntrada:
			resp.EntradasCaixa = resp.EntradasCaixa.Add(m.Valor)
		case model.TipoSaida:
			resp.SaidasCaixa = resp.SaidasCaixa.Add(m.Valor)
		}
		resp.MovimentosCaixa = append(resp.MovimentosCaixa, *movimentoCaixaToResponse(m))
	}
	resp.SaldoCaixa = resp.EntradasCaixa.Sub(resp.SaidasCaixa)
	return resp, nil
}

// Caixa reports one session by ID, or the currently open one when id is nil.
func (s *relatorioService) Caixa(ctx context.Context, id *uuid.UUID) (*dto.CaixaResponse, error) {
	var c *model.Caixa
	var err error
	if id != nil {
		c, err = s.caixas.FindByID(ctx, *id)
	} else {
		c, err = s.caixas.FindAberto(ctx)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return caixaToResponse(c, true), nil
}

// JanelaPeriodo resolves the named report presets: "dia" is today from
// midnight UTC, "semana" and "mes" are trailing 7 and 30 day windows. The
// second return is false for an unknown name, letting callers fall back to an
// explicit range.
func JanelaPeriodo(periodo string, agora time.Time) (time.Time, time.Time, bool) {
	agora = agora.UTC()
	switch periodo {
	case "dia":
		inicio := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
		return inicio, agora, true
	case "semana":
		return agora.AddDate(0, 0, -7), agora, true
	case "mes":
		return agora.AddDate(0, 0, -30), agora, true
	}
	return time.Time{}, time.Time{}, false
}

func hoje() (time.Time, time.Time) {
	agora := time.Now().UTC()
	inicio := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, time.UTC)
	return inicio, agora
}

func totaisPorTipo(movimentos []model.Movimento) (saidas, entradas decimal.Decimal) {
	saidas, entradas = decimal.Zero, decimal.Zero
	for i := range movimentos {
		m := &movimentos[i]
		switch m.Tipo {
		case model.TipoSaida:
			saidas = saidas.Add(m.ValorTotal())
		case model.TipoEntrada:
			entradas = entradas.Add(m.ValorTotal())
		}
	}
	return saidas, entradas
}
