package repository

import (
	"context"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProdutoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory fakes.
type ProdutoRepository interface {
	Create(ctx context.Context, p *model.Produto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error)
	List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error)
	// ListAtivos returns every active product, unpaginated. Valuation reports
	// sum over the whole catalog and must not be truncated by a page limit.
	ListAtivos(ctx context.Context) ([]model.Produto, error)
	ListEstoqueBaixo(ctx context.Context) ([]model.Produto, error)
	Update(ctx context.Context, p *model.Produto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Reativar(ctx context.Context, id uuid.UUID) error
	CountAtivos(ctx context.Context) (int64, error)
	CountEstoqueBaixo(ctx context.Context) (int64, error)
	CountMovimentos(ctx context.Context, id uuid.UUID) (int64, error)

	// Used inside transactions — callers must pass the tx instance.
	// FindByIDForUpdateTx takes a row lock so the stock check and the
	// decrement observe the same read under concurrency.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produtoRepo struct{ db *gorm.DB }

func NewProdutoRepository(db *gorm.DB) ProdutoRepository { return &produtoRepo{db: db} }

func (r *produtoRepo) Create(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *produtoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) List(ctx context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var produtos []model.Produto
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Produto{})
	if !filter.IncluirInativos {
		q = q.Where("ativo = true")
	}
	if filter.Nome != "" {
		q = q.Where("nome ILIKE ?", "%"+filter.Nome+"%")
	}

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
	err := q.Order("nome ASC").Limit(limit).Offset((page - 1) * limit).Find(&produtos).Error
	return produtos, total, err
}

func (r *produtoRepo) ListAtivos(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("ativo = true").
		Order("nome ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) ListEstoqueBaixo(ctx context.Context) ([]model.Produto, error) {
	var produtos []model.Produto
	err := r.db.WithContext(ctx).
		Where("ativo = true AND qtd <= estoque_minimo").
		Order("qtd ASC").
		Find(&produtos).Error
	return produtos, err
}

func (r *produtoRepo) Update(ctx context.Context, p *model.Produto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *produtoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *produtoRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Produto{}, "id = ?", id).Error
}

func (r *produtoRepo) Reativar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Produto{}).Where("id = ?", id).Update("ativo", true).Error
}

func (r *produtoRepo) CountAtivos(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).Where("ativo = true").Count(&total).Error
	return total, err
}

func (r *produtoRepo) CountEstoqueBaixo(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Produto{}).
		Where("ativo = true AND qtd <= estoque_minimo").
		Count(&total).Error
	return total, err
}

func (r *produtoRepo) CountMovimentos(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Movimento{}).Where("produto_id = ?", id).Count(&total).Error
	return total, err
}

func (r *produtoRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	var p model.Produto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *produtoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Produto{}).Where("id = ?", id).
		Update("qtd", gorm.Expr("qtd + ?", delta)).Error
}

func (r *produtoRepo) DB() *gorm.DB { return r.db }
