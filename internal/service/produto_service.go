package service

import (
	"context"
	"errors"
	"strings"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProdutoService defines the business logic contract for the product catalog.
type ProdutoService interface {
	Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	EstoqueBaixo(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	// Excluir hard-deletes when no movement references the product,
	// otherwise soft-deletes (ativo=false) to preserve the audit trail.
	Excluir(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
}

type produtoService struct {
	repo repository.ProdutoRepository
}

func NewProdutoService(repo repository.ProdutoRepository) ProdutoService {
	return &produtoService{repo: repo}
}

func (s *produtoService) Criar(ctx context.Context, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	nome := strings.TrimSpace(req.Nome)
	if nome == "" {
		return nil, NewValidacao("nome", "não pode ser vazio")
	}
	if req.ValorCompra.IsNegative() || req.ValorVenda.IsNegative() {
		return nil, NewValidacao("valor", "preços devem ser não-negativos")
	}
	if req.Qtd < 0 {
		return nil, NewValidacao("qtd", "deve ser não-negativa")
	}

	estoqueMinimo := 5
	if req.EstoqueMinimo != nil {
		if *req.EstoqueMinimo < 0 {
			return nil, NewValidacao("estoque_minimo", "deve ser não-negativo")
		}
		estoqueMinimo = *req.EstoqueMinimo
	}

	// Initial quantity does not post a movement — callers wanting an audit
	// entry for opening stock record it explicitly via MovimentoService.
	p := &model.Produto{
		Nome:          nome,
		Qtd:           req.Qtd,
		ValorCompra:   req.ValorCompra,
		ValorVenda:    req.ValorVenda,
		EstoqueMinimo: estoqueMinimo,
		Ativo:         true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 100
	}
	produtos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		items = append(items, *produtoToResponse(&produtos[i]))
	}
	return &dto.ProdutoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *produtoService) EstoqueBaixo(ctx context.Context) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.ListEstoqueBaixo(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		items = append(items, *produtoToResponse(&produtos[i]))
	}
	return items, nil
}

// Atualizar is a partial update of mutable fields. Qtd is never touched here:
// stock changes only through the movement ledger.
func (s *produtoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Nome != nil {
		nome := strings.TrimSpace(*req.Nome)
		if nome == "" {
			return nil, NewValidacao("nome", "não pode ser vazio")
		}
		p.Nome = nome
	}
	if req.ValorCompra != nil {
		if req.ValorCompra.IsNegative() {
			return nil, NewValidacao("valor_compra", "deve ser não-negativo")
		}
		p.ValorCompra = *req.ValorCompra
	}
	if req.ValorVenda != nil {
		if req.ValorVenda.IsNegative() {
			return nil, NewValidacao("valor_venda", "deve ser não-negativo")
		}
		p.ValorVenda = *req.ValorVenda
	}
	if req.EstoqueMinimo != nil {
		if *req.EstoqueMinimo < 0 {
			return nil, NewValidacao("estoque_minimo", "deve ser não-negativo")
		}
		p.EstoqueMinimo = *req.EstoqueMinimo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *produtoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	refs, err := s.repo.CountMovimentos(ctx, id)
	if err != nil {
		return err
	}
	if refs == 0 {
		return s.repo.HardDelete(ctx, id)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *produtoService) Reativar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.repo.Reativar(ctx, id)
}

func produtoToResponse(p *model.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:            p.ID.String(),
		Nome:          p.Nome,
		Qtd:           p.Qtd,
		ValorCompra:   p.ValorCompra,
		ValorVenda:    p.ValorVenda,
		EstoqueMinimo: p.EstoqueMinimo,
		EstoqueBaixo:  p.EstoqueBaixo(),
		MargemLucro:   p.MargemLucro(),
		Ativo:         p.Ativo,
	}
}
