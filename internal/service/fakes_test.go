package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/JPEDROPS092/sistemadecadastro/internal/dto"
	"github.com/JPEDROPS092/sistemadecadastro/internal/model"
	"github.com/JPEDROPS092/sistemadecadastro/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. DB() returns nil, which makes the services run
// their transactional closures directly against these maps.

// ── ProdutoRepository ────────────────────────────────────────────────────────

type fakeProdutoRepo struct {
	produtos   map[uuid.UUID]*model.Produto
	movimentos *fakeMovimentoRepo
}

func newFakeProdutoRepo() *fakeProdutoRepo {
	return &fakeProdutoRepo{produtos: make(map[uuid.UUID]*model.Produto)}
}

func (r *fakeProdutoRepo) Create(_ context.Context, p *model.Produto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.produtos[p.ID] = p
	return nil
}

func (r *fakeProdutoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProdutoRepo) List(_ context.Context, filter dto.ProdutoFilter) ([]model.Produto, int64, error) {
	var all []model.Produto
	for _, p := range r.produtos {
		if !filter.IncluirInativos && !p.Ativo {
			continue
		}
		if filter.Nome != "" && !strings.Contains(strings.ToLower(p.Nome), strings.ToLower(filter.Nome)) {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Nome < all[j].Nome })
	return all, int64(len(all)), nil
}

func (r *fakeProdutoRepo) ListAtivos(_ context.Context) ([]model.Produto, error) {
	var all []model.Produto
	for _, p := range r.produtos {
		if p.Ativo {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Nome < all[j].Nome })
	return all, nil
}

func (r *fakeProdutoRepo) ListEstoqueBaixo(_ context.Context) ([]model.Produto, error) {
	var all []model.Produto
	for _, p := range r.produtos {
		if p.Ativo && p.EstoqueBaixo() {
			all = append(all, *p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Qtd < all[j].Qtd })
	return all, nil
}

func (r *fakeProdutoRepo) Update(_ context.Context, p *model.Produto) error {
	r.produtos[p.ID] = p
	return nil
}

func (r *fakeProdutoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = false
	}
	return nil
}

func (r *fakeProdutoRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.produtos, id)
	return nil
}

func (r *fakeProdutoRepo) Reativar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.produtos[id]; ok {
		p.Ativo = true
	}
	return nil
}

func (r *fakeProdutoRepo) CountAtivos(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.produtos {
		if p.Ativo {
			n++
		}
	}
	return n, nil
}

func (r *fakeProdutoRepo) CountEstoqueBaixo(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.produtos {
		if p.Ativo && p.EstoqueBaixo() {
			n++
		}
	}
	return n, nil
}

func (r *fakeProdutoRepo) CountMovimentos(_ context.Context, id uuid.UUID) (int64, error) {
	if r.movimentos == nil {
		return 0, nil
	}
	var n int64
	for _, m := range r.movimentos.movimentos {
		if m.ProdutoID == id {
			n++
		}
	}
	return n, nil
}

func (r *fakeProdutoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProdutoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	if p, ok := r.produtos[id]; ok {
		p.Qtd += delta
	}
	return nil
}

func (r *fakeProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*fakeProdutoRepo)(nil)

// ── MovimentoRepository ──────────────────────────────────────────────────────

type fakeMovimentoRepo struct {
	movimentos []model.Movimento
	produtos   *fakeProdutoRepo
}

func newFakeMovimentoRepo() *fakeMovimentoRepo { return &fakeMovimentoRepo{} }

func (r *fakeMovimentoRepo) Create(_ context.Context, m *model.Movimento) error {
	return r.append(m)
}

func (r *fakeMovimentoRepo) CreateTx(_ *gorm.DB, m *model.Movimento) error {
	return r.append(m)
}

func (r *fakeMovimentoRepo) append(m *model.Movimento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *fakeMovimentoRepo) List(_ context.Context, filter dto.MovimentoFilter) ([]model.Movimento, int64, error) {
	var all []model.Movimento
	for _, m := range r.movimentos {
		if filter.ProdutoID != nil && m.ProdutoID != *filter.ProdutoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		all = append(all, m)
	}
	return all, int64(len(all)), nil
}

func (r *fakeMovimentoRepo) ListPeriodo(_ context.Context, inicio, fim time.Time) ([]model.Movimento, error) {
	var all []model.Movimento
	for _, m := range r.movimentos {
		if !m.CreatedAt.Before(inicio) && m.CreatedAt.Before(fim) {
			all = append(all, m)
		}
	}
	return all, nil
}

func (r *fakeMovimentoRepo) TopVendidos(_ context.Context, desde time.Time, limite int) ([]repository.TopVendido, error) {
	porProduto := make(map[uuid.UUID]int)
	for _, m := range r.movimentos {
		if m.Tipo == model.TipoSaida && !m.CreatedAt.Before(desde) {
			porProduto[m.ProdutoID] += m.Quantidade
		}
	}
	var rows []repository.TopVendido
	for pid, qtd := range porProduto {
		nome := pid.String()
		if r.produtos != nil {
			if p, ok := r.produtos.produtos[pid]; ok {
				nome = p.Nome
			}
		}
		rows = append(rows, repository.TopVendido{Nome: nome, Quantidade: qtd})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Quantidade > rows[j].Quantidade })
	if len(rows) > limite {
		rows = rows[:limite]
	}
	return rows, nil
}

var _ repository.MovimentoRepository = (*fakeMovimentoRepo)(nil)

// ── CaixaRepository ──────────────────────────────────────────────────────────

type fakeCaixaRepo struct {
	caixas     map[uuid.UUID]*model.Caixa
	movimentos []model.MovimentoCaixa
}

func newFakeCaixaRepo() *fakeCaixaRepo {
	return &fakeCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *fakeCaixaRepo) attach(c *model.Caixa) *model.Caixa {
	c.Movimentos = nil
	for _, m := range r.movimentos {
		if m.CaixaID == c.ID {
			c.Movimentos = append(c.Movimentos, m)
		}
	}
	return c
}

func (r *fakeCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	return r.CreateTx(nil, c)
}

func (r *fakeCaixaRepo) CreateTx(_ *gorm.DB, c *model.Caixa) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.caixas[c.ID] = c
	return nil
}

func (r *fakeCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.attach(c), nil
}

func (r *fakeCaixaRepo) FindAberto(_ context.Context) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.Status == model.StatusAberto {
			return r.attach(c), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCaixaRepo) FindAbertoTx(_ *gorm.DB) (*model.Caixa, error) {
	return r.FindAberto(context.Background())
}

func (r *fakeCaixaRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Caixa, error) {
	return r.FindByID(context.Background(), id)
}

func (r *fakeCaixaRepo) Update(_ context.Context, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *fakeCaixaRepo) UpdateTx(_ *gorm.DB, c *model.Caixa) error {
	r.caixas[c.ID] = c
	return nil
}

func (r *fakeCaixaRepo) List(_ context.Context, filter dto.CaixaFilter) ([]model.Caixa, int64, error) {
	var all []model.Caixa
	for _, c := range r.caixas {
		if filter.DataInicio != nil && c.DataAbertura.Before(*filter.DataInicio) {
			continue
		}
		if filter.DataFim != nil && !c.DataAbertura.Before(*filter.DataFim) {
			continue
		}
		all = append(all, *r.attach(c))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].DataAbertura.After(all[j].DataAbertura) })
	return all, int64(len(all)), nil
}

func (r *fakeCaixaRepo) CreateMovimento(_ context.Context, m *model.MovimentoCaixa) error {
	return r.CreateMovimentoTx(nil, m)
}

func (r *fakeCaixaRepo) CreateMovimentoTx(_ *gorm.DB, m *model.MovimentoCaixa) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *m)
	return nil
}

func (r *fakeCaixaRepo) ListMovimentos(_ context.Context, caixaID uuid.UUID) ([]model.MovimentoCaixa, error) {
	var result []model.MovimentoCaixa
	for _, m := range r.movimentos {
		if m.CaixaID == caixaID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeCaixaRepo) DB() *gorm.DB { return nil }

var _ repository.CaixaRepository = (*fakeCaixaRepo)(nil)

// ── UsuarioRepository ────────────────────────────────────────────────────────

type fakeUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newFakeUsuarioRepo() *fakeUsuarioRepo {
	return &fakeUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *fakeUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = time.Now()
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Ativo {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *fakeUsuarioRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUsuarioRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var all []model.Usuario
	for _, u := range r.usuarios {
		if u.Ativo {
			all = append(all, *u)
		}
	}
	return all, nil
}

func (r *fakeUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var all []model.Usuario
	for _, u := range r.usuarios {
		all = append(all, *u)
	}
	return all, nil
}

func (r *fakeUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *fakeUsuarioRepo) UpdateUltimoAcesso(_ context.Context, id uuid.UUID, t time.Time) error {
	if u, ok := r.usuarios[id]; ok {
		u.UltimoAcesso = &t
	}
	return nil
}

func (r *fakeUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Ativo = false
	}
	return nil
}

func (r *fakeUsuarioRepo) Reativar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Ativo = true
	}
	return nil
}

var _ repository.UsuarioRepository = (*fakeUsuarioRepo)(nil)

// ── TokenDenylist ────────────────────────────────────────────────────────────

type fakeDenylist struct {
	denied map[string]bool
}

func newFakeDenylist() *fakeDenylist { return &fakeDenylist{denied: make(map[string]bool)} }

func (d *fakeDenylist) Deny(_ context.Context, token string, _ time.Duration) error {
	d.denied[token] = true
	return nil
}

func (d *fakeDenylist) IsDenied(_ context.Context, token string) (bool, error) {
	return d.denied[token], nil
}
