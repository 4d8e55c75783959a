package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VendaService composes the checkout: stock decrements, exit movements, and
// the aggregate cash posting — all inside one transaction.
type VendaService interface {
	RegistrarVenda(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error)
}

type vendaService struct {
	produtoRepo   repository.ProdutoRepository
	movimentoRepo repository.MovimentoRepository
	caixaRepo     repository.CaixaRepository
}

func NewVendaService(
	produtoRepo repository.ProdutoRepository,
	movimentoRepo repository.MovimentoRepository,
	caixaRepo repository.CaixaRepository,
) VendaService {
	return &vendaService{
		produtoRepo:   produtoRepo,
		movimentoRepo: movimentoRepo,
		caixaRepo:     caixaRepo,
	}
}

// RegistrarVenda executes the full sale atomically:
//  1. For each line: lock the product row, check stock, decrement, append a
//     saida movement at the product's sale price. Any insufficient line fails
//     the whole sale — no partial application.
//  2. If a register session is open, post ONE aggregate entrada movement
//     (categoria "venda") for the cart total. When no session is open the
//     sale of stock still proceeds and the cash posting is skipped — stock
//     and cash are allowed to diverge with the till closed.
func (s *vendaService) RegistrarVenda(ctx context.Context, usuarioID *uuid.UUID, req dto.RegistrarVendaRequest) (*dto.VendaResponse, error) {
	if len(req.Itens) == 0 {
		return nil, NewValidacao("itens", "a venda precisa de pelo menos um item")
	}

	type linha struct {
		produtoID uuid.UUID
		qtd       int
	}
	linhas := make([]linha, 0, len(req.Itens))
	for _, item := range req.Itens {
		pid, err := uuid.Parse(item.ProdutoID)
		if err != nil {
			return nil, NewValidacao("produto_id", "uuid inválido")
		}
		if item.Quantidade <= 0 {
			return nil, NewValidacao("quantidade", "deve ser maior que zero")
		}
		linhas = append(linhas, linha{produtoID: pid, qtd: item.Quantidade})
	}

	resp := &dto.VendaResponse{
		FormaPagamento: req.FormaPagamento,
		Itens:          make([]dto.ItemVendaResponse, 0, len(linhas)),
	}

	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		total := decimal.Zero

		for _, l := range linhas {
			p, err := s.produtoRepo.FindByIDForUpdateTx(tx, l.produtoID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if !p.Ativo {
				return NewValidacao("produto_id", fmt.Sprintf("produto %s está inativo", p.Nome))
			}
			if p.Qtd < l.qtd {
				return fmt.Errorf("produto %s: %w", p.Nome, ErrEstoqueInsuficiente)
			}

			if err := s.produtoRepo.UpdateStockTx(tx, l.produtoID, -l.qtd); err != nil {
				return err
			}

			obs := "Venda"
			if req.Observacao != "" {
				obs = "Venda — " + req.Observacao
			}
			mov := model.Movimento{
				ProdutoID:     l.produtoID,
				Tipo:          model.TipoSaida,
				Quantidade:    l.qtd,
				ValorUnitario: p.ValorVenda,
				Observacao:    obs,
			}
			if err := s.movimentoRepo.CreateTx(tx, &mov); err != nil {
				return err
			}

			subtotal := p.ValorVenda.Mul(decimal.NewFromInt(int64(l.qtd)))
			total = total.Add(subtotal)
			resp.Itens = append(resp.Itens, dto.ItemVendaResponse{
				ProdutoID:     l.produtoID.String(),
				Produto:       p.Nome,
				Quantidade:    l.qtd,
				ValorUnitario: p.ValorVenda,
				Subtotal:      subtotal,
			})
		}
		resp.Total = total

		// One aggregate cash posting for the whole cart, only when a
		// session is open.
		caixa, err := s.caixaRepo.FindAbertoTx(tx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		forma := req.FormaPagamento
		mov := model.MovimentoCaixa{
			CaixaID:        caixa.ID,
			Tipo:           model.TipoEntrada,
			Categoria:      "venda",
			Descricao:      fmt.Sprintf("Venda de %d item(ns)", len(linhas)),
			Valor:          total,
			FormaPagamento: &forma,
		}
		if err := s.caixaRepo.CreateMovimentoTx(tx, &mov); err != nil {
			return err
		}
		caixaID := caixa.ID.String()
		resp.CaixaID = &caixaID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp.Data = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	return resp, nil
}
