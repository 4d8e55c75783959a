package service

import (
	"context"
	"errors"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaixaService manages the register session state machine:
// nenhum → aberto → fechado (terminal). At most one open session exists at
// any instant; the check runs inside a transaction and a partial unique
// index converts a lost race into a transaction abort.
type CaixaService interface {
	Abrir(ctx context.Context, usuarioID *uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Fechar(ctx context.Context, id uuid.UUID, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error)
	RegistrarMovimento(ctx context.Context, req dto.MovimentoCaixaRequest) (*dto.MovimentoCaixaResponse, error)
	// ObterAberto returns (nil, nil) when no session is open.
	ObterAberto(ctx context.Context) (*dto.CaixaResponse, error)
	Obter(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error)
	Historico(ctx context.Context, filter dto.CaixaFilter) (*dto.CaixaListResponse, error)
}

type caixaService struct {
	repo repository.CaixaRepository
}

func NewCaixaService(repo repository.CaixaRepository) CaixaService {
	return &caixaService{repo: repo}
}

func (s *caixaService) Abrir(ctx context.Context, usuarioID *uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if req.SaldoInicial.IsNegative() {
		return nil, NewValidacao("saldo_inicial", "deve ser não-negativo")
	}

	var caixa model.Caixa
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		_, err := s.repo.FindAbertoTx(tx)
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		caixa = model.Caixa{
			DataAbertura:       time.Now().UTC(),
			SaldoInicial:       req.SaldoInicial,
			Status:             model.StatusAberto,
			ObservacaoAbertura: req.Observacao,
			UsuarioAberturaID:  usuarioID,
		}
		return s.repo.CreateTx(tx, &caixa)
	})
	if txErr != nil {
		return nil, txErr
	}
	return caixaToResponse(&caixa, false), nil
}

func (s *caixaService) Fechar(ctx context.Context, id uuid.UUID, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error) {
	var caixa *model.Caixa
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if c.Status == model.StatusFechado {
			return ErrConflict
		}

		// Freeze the running balance: after this point the session is
		// immutable — movement postings are rejected.
		saldo := c.SaldoCalculado()
		agora := time.Now().UTC()
		c.SaldoFinal = &saldo
		c.DataFechamento = &agora
		c.Status = model.StatusFechado
		if req.Observacao != nil {
			c.Observacao = req.Observacao
		}
		caixa = c
		return s.repo.UpdateTx(tx, c)
	})
	if txErr != nil {
		return nil, txErr
	}
	return caixaToResponse(caixa, true), nil
}

func (s *caixaService) RegistrarMovimento(ctx context.Context, req dto.MovimentoCaixaRequest) (*dto.MovimentoCaixaResponse, error) {
	caixaID, err := uuid.Parse(req.CaixaID)
	if err != nil {
		return nil, NewValidacao("caixa_id", "uuid inválido")
	}
	if req.Tipo != model.TipoEntrada && req.Tipo != model.TipoSaida {
		return nil, NewValidacao("tipo", "deve ser entrada ou saida")
	}
	if !req.Valor.IsPositive() {
		return nil, NewValidacao("valor", "deve ser maior que zero")
	}

	var mov model.MovimentoCaixa
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDForUpdateTx(tx, caixaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if c.Status != model.StatusAberto {
			return ErrConflict
		}

		mov = model.MovimentoCaixa{
			CaixaID:        caixaID,
			Tipo:           req.Tipo,
			Categoria:      req.Categoria,
			Descricao:      req.Descricao,
			Valor:          req.Valor,
			FormaPagamento: req.FormaPagamento,
		}
		return s.repo.CreateMovimentoTx(tx, &mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return movimentoCaixaToResponse(&mov), nil
}

func (s *caixaService) ObterAberto(ctx context.Context) (*dto.CaixaResponse, error) {
	c, err := s.repo.FindAberto(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return caixaToResponse(c, true), nil
}

func (s *caixaService) Obter(ctx context.Context, id uuid.UUID) (*dto.CaixaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return caixaToResponse(c, true), nil
}

func (s *caixaService) Historico(ctx context.Context, filter dto.CaixaFilter) (*dto.CaixaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	caixas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CaixaResponse, 0, len(caixas))
	for i := range caixas {
		items = append(items, *caixaToResponse(&caixas[i], false))
	}
	return &dto.CaixaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func caixaToResponse(c *model.Caixa, incluirMovimentos bool) *dto.CaixaResponse {
	resp := &dto.CaixaResponse{
		ID:            c.ID.String(),
		DataAbertura:  c.DataAbertura.UTC().Format("2006-01-02T15:04:05Z"),
		SaldoInicial:  c.SaldoInicial,
		SaldoFinal:    c.SaldoFinal,
		SaldoAtual:    c.SaldoAtual(),
		TotalEntradas: c.TotalEntradas(),
		TotalSaidas:   c.TotalSaidas(),
		Status:        c.Status,
		Observacao:    c.Observacao,
	}
	if c.DataFechamento != nil {
		t := c.DataFechamento.UTC().Format("2006-01-02T15:04:05Z")
		resp.DataFechamento = &t
	}
	if incluirMovimentos {
		resp.Movimentos = make([]dto.MovimentoCaixaResponse, 0, len(c.Movimentos))
		for i := range c.Movimentos {
			resp.Movimentos = append(resp.Movimentos, *movimentoCaixaToResponse(&c.Movimentos[i]))
		}
	}
	return resp
}

func movimentoCaixaToResponse(m *model.MovimentoCaixa) *dto.MovimentoCaixaResponse {
	return &dto.MovimentoCaixaResponse{
		ID:             m.ID.String(),
		CaixaID:        m.CaixaID.String(),
		Tipo:           m.Tipo,
		Categoria:      m.Categoria,
		Descricao:      m.Descricao,
		Valor:          m.Valor,
		FormaPagamento: m.FormaPagamento,
		Data:           m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
