package repository

import (
	"context"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	CreateTx(tx *gorm.DB, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	// FindAberto returns the single open session, or gorm.ErrRecordNotFound.
	FindAberto(ctx context.Context) (*model.Caixa, error)
	FindAbertoTx(tx *gorm.DB) (*model.Caixa, error)
	// FindByIDForUpdateTx locks the session row: close and movement postings
	// against the same session serialize on it.
	FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Caixa, error)
	Update(ctx context.Context, c *model.Caixa) error
	UpdateTx(tx *gorm.DB, c *model.Caixa) error
	List(ctx context.Context, filter dto.CaixaFilter) ([]model.Caixa, int64, error)
	CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error
	CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoCaixa) error
	ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error)
	DB() *gorm.DB
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) CreateTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Preload("Movimentos").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *caixaRepo) FindAberto(ctx context.Context) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).Preload("Movimentos").
		First(&c, "status = ?", model.StatusAberto).Error
	return &c, err
}

func (r *caixaRepo) FindAbertoTx(tx *gorm.DB) (*model.Caixa, error) {
	var c model.Caixa
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "status = ?", model.StatusAberto).Error
	return &c, err
}

func (r *caixaRepo) FindByIDForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	// Movements are loaded after the lock so the balance is computed against
	// a stable session row.
	if err := tx.Where("caixa_id = ?", id).Order("created_at ASC").Find(&c.Movimentos).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Update persists only the session row. Associations are omitted so a Caixa
// loaded with its movements never re-upserts the sub-ledger, which is
// append-only.
func (r *caixaRepo) Update(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error
}

func (r *caixaRepo) UpdateTx(tx *gorm.DB, c *model.Caixa) error {
	return tx.Omit(clause.Associations).Save(c).Error
}

func (r *caixaRepo) List(ctx context.Context, filter dto.CaixaFilter) ([]model.Caixa, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Caixa{})
	if filter.DataInicio != nil {
		q = q.Where("data_abertura >= ?", *filter.DataInicio)
	}
	if filter.DataFim != nil {
		q = q.Where("data_abertura < ?", *filter.DataFim)
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
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var caixas []model.Caixa
	err := q.Preload("Movimentos").Order("data_abertura DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&caixas).Error
	return caixas, total, err
}

func (r *caixaRepo) CreateMovimento(ctx context.Context, m *model.MovimentoCaixa) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *caixaRepo) CreateMovimentoTx(tx *gorm.DB, m *model.MovimentoCaixa) error {
	return tx.Create(m).Error
}

func (r *caixaRepo) ListMovimentos(ctx context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var movs []model.MovimentoCaixa
	err := r.db.WithContext(ctx).Where("caixa_id = ?", caixaID).
		Order("created_at DESC").Find(&movs).Error
	return movs, err
}

func (r *caixaRepo) DB() *gorm.DB { return r.db }
