package service

import (
	"context"
	"testing"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcionarioFixture struct {
	repo        *memFuncionarioRepo
	filiais     *memFilialRepo
	emprestimos *memEmprestimoRepo
	svc         FuncionarioService
	filial      *model.Filial
}

func setupFuncionario(t *testing.T) *funcionarioFixture {
	t.Helper()
	repo := newMemFuncionarioRepo()
	filiais := newMemFilialRepo()
	setores := newMemSetorRepo()
	cargos := newMemCargoRepo()
	emprestimos := newMemEmprestimoRepo()

	filial := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: true}
	require.NoError(t, filiais.Create(context.Background(), filial))

	return &funcionarioFixture{
		repo:        repo,
		filiais:     filiais,
		emprestimos: emprestimos,
		svc:         NewFuncionarioService(repo, filiais, setores, cargos, emprestimos),
		filial:      filial,
	}
}

func TestFuncionarioCriarNormalizaCPF(t *testing.T) {
	fx := setupFuncionario(t)

	resp, err := fx.svc.Criar(context.Background(), dto.CriarFuncionarioRequest{
		Nome:      "Joao Silva",
		CPF:       "529.982.247-25",
		Matricula: "M001",
		Filiais:   []string{fx.filial.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", resp.CPF)
	require.Len(t, resp.Filiais, 1)
	assert.Equal(t, fx.filial.ID.String(), resp.Filiais[0].ID)
}

func TestFuncionarioCriarCPFInvalido(t *testing.T) {
	fx := setupFuncionario(t)

	_, err := fx.svc.Criar(context.Background(), dto.CriarFuncionarioRequest{
		Nome:      "Joao Silva",
		CPF:       "52998224724",
		Matricula: "M001",
	})
	require.Error(t, err)
	apiErr := apierror.From(err)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Fields, "cpf")
}

func TestFuncionarioCriarCPFEMatriculaDuplicados(t *testing.T) {
	fx := setupFuncionario(t)
	_, err := fx.svc.Criar(context.Background(), dto.CriarFuncionarioRequest{
		Nome: "Joao Silva", CPF: "52998224725", Matricula: "M001",
	})
	require.NoError(t, err)

	_, err = fx.svc.Criar(context.Background(), dto.CriarFuncionarioRequest{
		Nome: "Outro", CPF: "52998224725", Matricula: "M002",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeDuplicate, apierror.From(err).Code)

	_, err = fx.svc.Criar(context.Background(), dto.CriarFuncionarioRequest{
		Nome: "Outro", CPF: "16899535009", Matricula: "M001",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeDuplicate, apierror.From(err).Code)
}

func (fx *funcionarioFixture) comEmprestimoAberto(t *testing.T) *model.Funcionario {
	t.Helper()
	f := &model.Funcionario{Nome: "Joao Silva", CPF: "52998224725", Matricula: "M001", Ativo: true}
	require.NoError(t, fx.repo.Create(context.Background(), f))
	require.NoError(t, fx.emprestimos.CreateTx(nil, &model.Emprestimo{
		Nome:          "Obra 12",
		FerramentaID:  uuid.New(),
		FuncionarioID: f.ID,
		Ativo:         true,
	}))
	return f
}

func TestFuncionarioComEmprestimoAbertoNaoEdita(t *testing.T) {
	fx := setupFuncionario(t)
	f := fx.comEmprestimoAberto(t)

	nome := "Joao S."
	_, err := fx.svc.Atualizar(context.Background(), f.ID, dto.AtualizarFuncionarioRequest{Nome: &nome})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeBlocked, apierror.From(err).Code)
}

func TestFuncionarioComEmprestimoAbertoNaoDesativa(t *testing.T) {
	fx := setupFuncionario(t)
	f := fx.comEmprestimoAberto(t)

	err := fx.svc.Desativar(context.Background(), f.ID, false)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeBlocked, apierror.From(err).Code)
	assert.True(t, fx.repo.funcionarios[f.ID].Ativo)
}

func TestFuncionarioDesativarEReativar(t *testing.T) {
	fx := setupFuncionario(t)
	f := &model.Funcionario{Nome: "Joao Silva", CPF: "52998224725", Matricula: "M001", Ativo: true}
	require.NoError(t, fx.repo.Create(context.Background(), f))

	require.NoError(t, fx.svc.Desativar(context.Background(), f.ID, false))
	assert.False(t, fx.repo.funcionarios[f.ID].Ativo)

	require.NoError(t, fx.svc.Reativar(context.Background(), f.ID))
	assert.True(t, fx.repo.funcionarios[f.ID].Ativo)
}

func TestFuncionarioCriarFilialInativa(t *testing.T) {
	fx := setupFuncionario(t)
	fx.filiais.filiais[fx.filial.ID].Ativo = false

	_, err := fx.svc.Criar(context.Background(), dto.CriarFuncionarioRequest{
		Nome:      "Joao Silva",
		CPF:       "52998224725",
		Matricula: "M001",
		Filiais:   []string{fx.filial.ID.String()},
	})
	require.Error(t, err)
	apiErr := apierror.From(err)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Fields, "filiais")
}

func TestFuncionarioPatchAtivoUsaCaminhoGuardado(t *testing.T) {
	fx := setupFuncionario(t)
	f := &model.Funcionario{Nome: "Joao Silva", CPF: "52998224725", Matricula: "M001", Ativo: true}
	require.NoError(t, fx.repo.Create(context.Background(), f))

	inativo := false
	resp, err := fx.svc.Atualizar(context.Background(), f.ID, dto.AtualizarFuncionarioRequest{Ativo: &inativo})
	require.NoError(t, err)
	assert.False(t, resp.Ativo)

	// The flip went through Desativar, so its idempotence guard now holds.
	err = fx.svc.Desativar(context.Background(), f.ID, false)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)

	ativo := true
	resp, err = fx.svc.Atualizar(context.Background(), f.ID, dto.AtualizarFuncionarioRequest{Ativo: &ativo})
	require.NoError(t, err)
	assert.True(t, resp.Ativo)

	err = fx.svc.Reativar(context.Background(), f.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)
}
