package repository

import (
	"context"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"

	"gorm.io/gorm"
)

// TopVendido is one row of the "most sold products" aggregation.
type TopVendido struct {
	Nome       string
	Quantidade int
}

// MovimentoRepository is the append-only stock ledger. There is deliberately
// no Update or Delete — movements are an audit trail.
type MovimentoRepository interface {
	Create(ctx context.Context, m *model.Movimento) error
	CreateTx(tx *gorm.DB, m *model.Movimento) error
	List(ctx context.Context, filter dto.MovimentoFilter) ([]model.Movimento, int64, error)
	ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Movimento, error)
	TopVendidos(ctx context.Context, desde time.Time, limite int) ([]TopVendido, error)
}

type movimentoRepo struct{ db *gorm.DB }

func NewMovimentoRepository(db *gorm.DB) MovimentoRepository {
	return &movimentoRepo{db: db}
}

func (r *movimentoRepo) Create(ctx context.Context, m *model.Movimento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *movimentoRepo) CreateTx(tx *gorm.DB, m *model.Movimento) error {
	return tx.Create(m).Error
}

func (r *movimentoRepo) List(ctx context.Context, filter dto.MovimentoFilter) ([]model.Movimento, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Movimento{}).Preload("Produto")
	if filter.ProdutoID != nil {
		q = q.Where("produto_id = ?", *filter.ProdutoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.DataInicio != nil {
		q = q.Where("created_at >= ?", *filter.DataInicio)
	}
	if filter.DataFim != nil {
		q = q.Where("created_at < ?", *filter.DataFim)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var movimentos []model.Movimento
	err := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&movimentos).Error
	return movimentos, total, err
}

func (r *movimentoRepo) ListPeriodo(ctx context.Context, inicio, fim time.Time) ([]model.Movimento, error) {
	var movimentos []model.Movimento
	err := r.db.WithContext(ctx).Preload("Produto").
		Where("created_at >= ? AND created_at < ?", inicio, fim).
		Order("created_at DESC").
		Find(&movimentos).Error
	return movimentos, err
}

func (r *movimentoRepo) TopVendidos(ctx context.Context, desde time.Time, limite int) ([]TopVendido, error) {
	var rows []TopVendido
	err := r.db.WithContext(ctx).Model(&model.Movimento{}).
		Select("produtos.nome AS nome, SUM(movimentos.quantidade) AS quantidade").
		Joins("JOIN produtos ON produtos.id = movimentos.produto_id").
		Where("movimentos.tipo = ? AND movimentos.created_at >= ?", model.TipoSaida, desde).
		Group("produtos.id, produtos.nome").
		Order("quantidade DESC").
		Limit(limite).
		Scan(&rows).Error
	return rows, err
}
