package service

import (
	"context"
	"testing"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupUsuario(t *testing.T) (*memUsuarioRepo, *memFilialRepo, UsuarioService, *model.Filial) {
	t.Helper()
	repo := newMemUsuarioRepo()
	filiais := newMemFilialRepo()
	filial := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: true}
	require.NoError(t, filiais.Create(context.Background(), filial))
	return repo, filiais, NewUsuarioService(repo, filiais), filial
}

func TestUsuarioCriarComSenhaHasheada(t *testing.T) {
	repo, _, svc, _ := setupUsuario(t)

	resp, err := svc.Criar(context.Background(), dto.CriarUsuarioRequest{
		Nome:       "Maria Souza",
		CPF:        "529.982.247-25",
		Senha:      "segredo1",
		TipoAcesso: "ADMINISTRADOR",
	})
	require.NoError(t, err)
	assert.Equal(t, "52998224725", resp.CPF)

	stored, err := repo.FindByCPF(context.Background(), "52998224725")
	require.NoError(t, err)
	assert.NotEqual(t, "segredo1", stored.SenhaHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.SenhaHash), []byte("segredo1")))
}

func TestUsuarioCriarCoordenadorExigeFilial(t *testing.T) {
	_, _, svc, filial := setupUsuario(t)

	_, err := svc.Criar(context.Background(), dto.CriarUsuarioRequest{
		Nome:       "Carlos Lima",
		CPF:        "52998224725",
		Senha:      "segredo1",
		TipoAcesso: "COORDENADOR",
	})
	require.Error(t, err)
	apiErr := apierror.From(err)
	assert.Equal(t, apierror.CodeValidation, apiErr.Code)
	assert.Contains(t, apiErr.Fields, "filiais")

	resp, err := svc.Criar(context.Background(), dto.CriarUsuarioRequest{
		Nome:       "Carlos Lima",
		CPF:        "52998224725",
		Senha:      "segredo1",
		TipoAcesso: "COORDENADOR",
		Filiais:    []string{filial.ID.String()},
	})
	require.NoError(t, err)
	require.Len(t, resp.Filiais, 1)
}

func TestUsuarioCriarCPFDuplicado(t *testing.T) {
	_, _, svc, _ := setupUsuario(t)
	_, err := svc.Criar(context.Background(), dto.CriarUsuarioRequest{
		Nome: "Maria", CPF: "52998224725", Senha: "segredo1", TipoAcesso: "MAXIMO",
	})
	require.NoError(t, err)

	_, err = svc.Criar(context.Background(), dto.CriarUsuarioRequest{
		Nome: "Outra", CPF: "52998224725", Senha: "segredo2", TipoAcesso: "MAXIMO",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeDuplicate, apierror.From(err).Code)
}

func TestUsuarioAtualizarDemocaoParaCoordenadorSemFiliais(t *testing.T) {
	repo, _, svc, _ := setupUsuario(t)
	u := &model.Usuario{Nome: "Maria", CPF: "52998224725", SenhaHash: "x", TipoAcesso: model.AcessoAdministrador, Ativo: true}
	require.NoError(t, repo.Create(context.Background(), u))

	tipo := "COORDENADOR"
	_, err := svc.Atualizar(context.Background(), u.ID, dto.AtualizarUsuarioRequest{TipoAcesso: &tipo})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeValidation, apierror.From(err).Code)
}

func TestUsuarioDesativarEReativar(t *testing.T) {
	repo, _, svc, _ := setupUsuario(t)
	u := &model.Usuario{Nome: "Maria", CPF: "52998224725", SenhaHash: "x", TipoAcesso: model.AcessoMaximo, Ativo: true}
	require.NoError(t, repo.Create(context.Background(), u))

	require.NoError(t, svc.Desativar(context.Background(), u.ID, false))
	assert.False(t, repo.usuarios[u.ID].Ativo)

	err := svc.Desativar(context.Background(), u.ID, false)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)

	require.NoError(t, svc.Reativar(context.Background(), u.ID))
	assert.True(t, repo.usuarios[u.ID].Ativo)
}

func TestUsuarioResponseNuncaExpoeHash(t *testing.T) {
	_, _, svc, _ := setupUsuario(t)
	resp, err := svc.Criar(context.Background(), dto.CriarUsuarioRequest{
		Nome: "Maria", CPF: "52998224725", Senha: "segredo1", TipoAcesso: "MAXIMO",
	})
	require.NoError(t, err)
	// The response type has no hash field; spot-check the visible ones.
	assert.Equal(t, "Maria", resp.Nome)
	assert.Equal(t, "MAXIMO", resp.TipoAcesso)
}
