package service

import (
	"context"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// callback directly, letting the transactional flows run without postgres.

type memFilialRepo struct {
	filiais     map[uuid.UUID]*model.Filial
	bloqueantes []model.Ferramenta
}

func newMemFilialRepo() *memFilialRepo {
	return &memFilialRepo{filiais: map[uuid.UUID]*model.Filial{}}
}

func (r *memFilialRepo) Create(_ context.Context, f *model.Filial) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.filiais[f.ID] = f
	return nil
}

func (r *memFilialRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Filial, error) {
	f, ok := r.filiais[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFilialRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Filial, int64, error) {
	out := make([]model.Filial, 0, len(r.filiais))
	for _, f := range r.filiais {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *memFilialRepo) Update(_ context.Context, f *model.Filial) error {
	r.filiais[f.ID] = f
	return nil
}

func (r *memFilialRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	f, ok := r.filiais[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Ativo = ativo
	return nil
}

func (r *memFilialRepo) FerramentasBloqueantes(_ context.Context, _ uuid.UUID) ([]model.Ferramenta, error) {
	return r.bloqueantes, nil
}

type memDepositoRepo struct {
	depositos   map[uuid.UUID]*model.Deposito
	bloqueantes []model.Ferramenta
}

func newMemDepositoRepo() *memDepositoRepo {
	return &memDepositoRepo{depositos: map[uuid.UUID]*model.Deposito{}}
}

func (r *memDepositoRepo) Create(_ context.Context, d *model.Deposito) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.depositos[d.ID] = d
	return nil
}

func (r *memDepositoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Deposito, error) {
	d, ok := r.depositos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDepositoRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Deposito, int64, error) {
	out := make([]model.Deposito, 0, len(r.depositos))
	for _, d := range r.depositos {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (r *memDepositoRepo) Update(_ context.Context, d *model.Deposito) error {
	r.depositos[d.ID] = d
	return nil
}

func (r *memDepositoRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	d, ok := r.depositos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Ativo = ativo
	return nil
}

func (r *memDepositoRepo) FerramentasBloqueantes(_ context.Context, _ uuid.UUID) ([]model.Ferramenta, error) {
	return r.bloqueantes, nil
}

type memCargoRepo struct {
	cargos map[uuid.UUID]*model.Cargo
}

func newMemCargoRepo() *memCargoRepo {
	return &memCargoRepo{cargos: map[uuid.UUID]*model.Cargo{}}
}

func (r *memCargoRepo) Create(_ context.Context, c *model.Cargo) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cargos[c.ID] = c
	return nil
}

func (r *memCargoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cargo, error) {
	c, ok := r.cargos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCargoRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Cargo, int64, error) {
	out := make([]model.Cargo, 0, len(r.cargos))
	for _, c := range r.cargos {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *memCargoRepo) Update(_ context.Context, c *model.Cargo) error {
	r.cargos[c.ID] = c
	return nil
}

func (r *memCargoRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	c, ok := r.cargos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Ativo = ativo
	return nil
}

type memSetorRepo struct {
	setores map[uuid.UUID]*model.Setor
}

func newMemSetorRepo() *memSetorRepo {
	return &memSetorRepo{setores: map[uuid.UUID]*model.Setor{}}
}

func (r *memSetorRepo) Create(_ context.Context, s *model.Setor) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.setores[s.ID] = s
	return nil
}

func (r *memSetorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Setor, error) {
	s, ok := r.setores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memSetorRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Setor, int64, error) {
	out := make([]model.Setor, 0, len(r.setores))
	for _, s := range r.setores {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *memSetorRepo) Update(_ context.Context, s *model.Setor) error {
	r.setores[s.ID] = s
	return nil
}

func (r *memSetorRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	s, ok := r.setores[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Ativo = ativo
	return nil
}

type memFerramentaRepo struct {
	ferramentas map[uuid.UUID]*model.Ferramenta
}

func newMemFerramentaRepo() *memFerramentaRepo {
	return &memFerramentaRepo{ferramentas: map[uuid.UUID]*model.Ferramenta{}}
}

func (r *memFerramentaRepo) DB() *gorm.DB { return nil }

func (r *memFerramentaRepo) Create(_ context.Context, f *model.Ferramenta) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.ferramentas[f.ID] = f
	return nil
}

func (r *memFerramentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ferramenta, error) {
	f, ok := r.ferramentas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFerramentaRepo) FindByNumeroSerie(_ context.Context, serie string) (*model.Ferramenta, error) {
	for _, f := range r.ferramentas {
		if f.NumeroSerie == serie {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFerramentaRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Ferramenta, int64, error) {
	out := make([]model.Ferramenta, 0, len(r.ferramentas))
	for _, f := range r.ferramentas {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *memFerramentaRepo) Update(_ context.Context, f *model.Ferramenta) error {
	r.ferramentas[f.ID] = f
	return nil
}

func (r *memFerramentaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado model.EstadoFerramenta) error {
	f, ok := r.ferramentas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Estado = estado
	return nil
}

func (r *memFerramentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.EstadoFerramenta) error {
	return r.UpdateEstado(context.Background(), id, estado)
}

type memFuncionarioRepo struct {
	funcionarios map[uuid.UUID]*model.Funcionario
}

func newMemFuncionarioRepo() *memFuncionarioRepo {
	return &memFuncionarioRepo{funcionarios: map[uuid.UUID]*model.Funcionario{}}
}

func (r *memFuncionarioRepo) Create(_ context.Context, f *model.Funcionario) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	r.funcionarios[f.ID] = f
	return nil
}

func (r *memFuncionarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Funcionario, error) {
	f, ok := r.funcionarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *memFuncionarioRepo) FindByCPF(_ context.Context, cpf string) (*model.Funcionario, error) {
	for _, f := range r.funcionarios {
		if f.CPF == cpf {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFuncionarioRepo) FindByMatricula(_ context.Context, matricula string) (*model.Funcionario, error) {
	for _, f := range r.funcionarios {
		if f.Matricula == matricula {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFuncionarioRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Funcionario, int64, error) {
	out := make([]model.Funcionario, 0, len(r.funcionarios))
	for _, f := range r.funcionarios {
		out = append(out, *f)
	}
	return out, int64(len(out)), nil
}

func (r *memFuncionarioRepo) Update(_ context.Context, f *model.Funcionario) error {
	r.funcionarios[f.ID] = f
	return nil
}

func (r *memFuncionarioRepo) ReplaceFiliais(_ context.Context, f *model.Funcionario, filiais []model.Filial) error {
	stored, ok := r.funcionarios[f.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Filiais = filiais
	return nil
}

func (r *memFuncionarioRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	f, ok := r.funcionarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Ativo = ativo
	return nil
}

type memEmprestimoRepo struct {
	emprestimos map[uuid.UUID]*model.Emprestimo
}

func newMemEmprestimoRepo() *memEmprestimoRepo {
	return &memEmprestimoRepo{emprestimos: map[uuid.UUID]*model.Emprestimo{}}
}

func (r *memEmprestimoRepo) DB() *gorm.DB { return nil }

func (r *memEmprestimoRepo) CreateTx(_ *gorm.DB, e *model.Emprestimo) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.emprestimos[e.ID] = e
	return nil
}

func (r *memEmprestimoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Emprestimo, error) {
	e, ok := r.emprestimos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *memEmprestimoRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Emprestimo, int64, error) {
	out := make([]model.Emprestimo, 0, len(r.emprestimos))
	for _, e := range r.emprestimos {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *memEmprestimoRepo) Update(_ context.Context, e *model.Emprestimo) error {
	r.emprestimos[e.ID] = e
	return nil
}

func (r *memEmprestimoRepo) UpdateTx(_ *gorm.DB, e *model.Emprestimo) error {
	r.emprestimos[e.ID] = e
	return nil
}

func (r *memEmprestimoRepo) CountAbertosPorFuncionario(_ context.Context, funcionarioID uuid.UUID) (int64, error) {
	var n int64
	for _, e := range r.emprestimos {
		if e.FuncionarioID == funcionarioID && e.Aberto() {
			n++
		}
	}
	return n, nil
}

func (r *memEmprestimoRepo) ListVencidos(_ context.Context, asOf time.Time) ([]model.Emprestimo, error) {
	var out []model.Emprestimo
	for _, e := range r.emprestimos {
		if e.Aberto() && e.DataPrevista != nil && e.DataPrevista.Before(asOf) {
			out = append(out, *e)
		}
	}
	return out, nil
}

type memManutencaoRepo struct {
	manutencoes map[uuid.UUID]*model.Manutencao
}

func newMemManutencaoRepo() *memManutencaoRepo {
	return &memManutencaoRepo{manutencoes: map[uuid.UUID]*model.Manutencao{}}
}

func (r *memManutencaoRepo) DB() *gorm.DB { return nil }

func (r *memManutencaoRepo) CreateTx(_ *gorm.DB, m *model.Manutencao) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.manutencoes[m.ID] = m
	return nil
}

func (r *memManutencaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Manutencao, error) {
	m, ok := r.manutencoes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *memManutencaoRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Manutencao, int64, error) {
	out := make([]model.Manutencao, 0, len(r.manutencoes))
	for _, m := range r.manutencoes {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *memManutencaoRepo) Update(_ context.Context, m *model.Manutencao) error {
	r.manutencoes[m.ID] = m
	return nil
}

func (r *memManutencaoRepo) UpdateTx(_ *gorm.DB, m *model.Manutencao) error {
	r.manutencoes[m.ID] = m
	return nil
}

type memUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newMemUsuarioRepo() *memUsuarioRepo {
	return &memUsuarioRepo{usuarios: map[uuid.UUID]*model.Usuario{}}
}

func (r *memUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsuarioRepo) FindByCPF(_ context.Context, cpf string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.CPF == cpf {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUsuarioRepo) List(_ context.Context, _ dto.ListQuery) ([]model.Usuario, int64, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *memUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *memUsuarioRepo) ReplaceFiliais(_ context.Context, u *model.Usuario, filiais []model.Filial) error {
	stored, ok := r.usuarios[u.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Filiais = filiais
	return nil
}

func (r *memUsuarioRepo) SetAtivo(_ context.Context, id uuid.UUID, ativo bool) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Ativo = ativo
	return nil
}
