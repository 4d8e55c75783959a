package service

import (
	"context"
	"errors"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovimentoService is the single write path for stock quantities: every
// increment or decrement of Produto.Qtd goes through here, paired with an
// append-only ledger entry inside the same transaction.
type MovimentoService interface {
	RegistrarEntrada(ctx context.Context, req dto.RegistrarMovimentoRequest) (*dto.MovimentoResponse, error)
	RegistrarSaida(ctx context.Context, req dto.RegistrarMovimentoRequest) (*dto.MovimentoResponse, error)
	// AjustarEstoque is the administrative replenishment shortcut: it posts a
	// regular entrada/saida movement so the ledger and the stock never diverge.
	AjustarEstoque(ctx context.Context, produtoID uuid.UUID, delta int, motivo string) (*dto.MovimentoResponse, error)
	Listar(ctx context.Context, filter dto.MovimentoFilter) (*dto.MovimentoListResponse, error)
}

type movimentoService struct {
	produtoRepo repository.ProdutoRepository
	repo        repository.MovimentoRepository
}

func NewMovimentoService(produtoRepo repository.ProdutoRepository, repo repository.MovimentoRepository) MovimentoService {
	return &movimentoService{produtoRepo: produtoRepo, repo: repo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

func (s *movimentoService) RegistrarEntrada(ctx context.Context, req dto.RegistrarMovimentoRequest) (*dto.MovimentoResponse, error) {
	return s.registrar(ctx, model.TipoEntrada, req)
}

func (s *movimentoService) RegistrarSaida(ctx context.Context, req dto.RegistrarMovimentoRequest) (*dto.MovimentoResponse, error) {
	return s.registrar(ctx, model.TipoSaida, req)
}

func (s *movimentoService) registrar(ctx context.Context, tipo string, req dto.RegistrarMovimentoRequest) (*dto.MovimentoResponse, error) {
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, NewValidacao("produto_id", "uuid inválido")
	}
	if req.Quantidade <= 0 {
		return nil, NewValidacao("quantidade", "deve ser maior que zero")
	}

	var mov model.Movimento
	var produtoNome string
	txErr := runTx(ctx, s.produtoRepo.DB(), func(tx *gorm.DB) error {
		// The FOR UPDATE lock makes the stock check and the decrement observe
		// the same read under concurrent requests.
		p, err := s.produtoRepo.FindByIDForUpdateTx(tx, produtoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		produtoNome = p.Nome

		delta := req.Quantidade
		valor := p.ValorCompra
		if tipo == model.TipoSaida {
			if p.Qtd < req.Quantidade {
				return ErrEstoqueInsuficiente
			}
			delta = -req.Quantidade
			valor = p.ValorVenda
		}
		if req.ValorUnitario != nil {
			if req.ValorUnitario.IsNegative() {
				return NewValidacao("valor_unitario", "deve ser não-negativo")
			}
			valor = *req.ValorUnitario
		}

		if err := s.produtoRepo.UpdateStockTx(tx, produtoID, delta); err != nil {
			return err
		}

		mov = model.Movimento{
			ProdutoID:     produtoID,
			Tipo:          tipo,
			Quantidade:    req.Quantidade,
			ValorUnitario: valor,
			Observacao:    req.Observacao,
		}
		return s.repo.CreateTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movimentoToResponse(&mov)
	resp.ProdutoNome = produtoNome
	return resp, nil
}

func (s *movimentoService) AjustarEstoque(ctx context.Context, produtoID uuid.UUID, delta int, motivo string) (*dto.MovimentoResponse, error) {
	if delta == 0 {
		return nil, NewValidacao("delta", "deve ser diferente de zero")
	}
	if motivo == "" {
		motivo = "Ajuste de estoque"
	}
	req := dto.RegistrarMovimentoRequest{
		ProdutoID:  produtoID.String(),
		Quantidade: delta,
		Observacao: motivo,
	}
	if delta > 0 {
		return s.registrar(ctx, model.TipoEntrada, req)
	}
	req.Quantidade = -delta
	return s.registrar(ctx, model.TipoSaida, req)
}

func (s *movimentoService) Listar(ctx context.Context, filter dto.MovimentoFilter) (*dto.MovimentoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	movimentos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovimentoResponse, 0, len(movimentos))
	for i := range movimentos {
		items = append(items, *movimentoToResponse(&movimentos[i]))
	}
	return &dto.MovimentoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func movimentoToResponse(m *model.Movimento) *dto.MovimentoResponse {
	nome := ""
	if m.Produto != nil {
		nome = m.Produto.Nome
	}
	return &dto.MovimentoResponse{
		ID:            m.ID.String(),
		ProdutoID:     m.ProdutoID.String(),
		ProdutoNome:   nome,
		Tipo:          m.Tipo,
		Quantidade:    m.Quantidade,
		ValorUnitario: m.ValorUnitario,
		ValorTotal:    m.ValorUnitario.Mul(decimal.NewFromInt(int64(m.Quantidade))),
		Observacao:    m.Observacao,
		Data:          m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
