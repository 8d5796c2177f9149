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

func TestFilialDesativarSemBloqueios(t *testing.T) {
	repo := newMemFilialRepo()
	svc := NewFilialService(repo)

	f := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: true}
	require.NoError(t, repo.Create(context.Background(), f))

	require.NoError(t, svc.Desativar(context.Background(), f.ID, false))
	assert.False(t, repo.filiais[f.ID].Ativo)
}

func TestFilialDesativarBloqueadaPorFerramentas(t *testing.T) {
	repo := newMemFilialRepo()
	svc := NewFilialService(repo)

	f := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: true}
	require.NoError(t, repo.Create(context.Background(), f))
	repo.bloqueantes = []model.Ferramenta{
		{ID: uuid.New(), Nome: "Furadeira", Estado: model.EstadoEmprestada},
		{ID: uuid.New(), Nome: "Serra", Estado: model.EstadoEmManutencao},
	}

	err := svc.Desativar(context.Background(), f.ID, false)
	require.Error(t, err)
	apiErr := apierror.From(err)
	assert.Equal(t, apierror.CodeBlocked, apiErr.Code)
	assert.Len(t, apiErr.Blocking, 2)
	assert.True(t, repo.filiais[f.ID].Ativo, "blocked deactivation must not apply")
}

func TestFilialDesativarPreviewNaoAplica(t *testing.T) {
	repo := newMemFilialRepo()
	svc := NewFilialService(repo)

	f := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: true}
	require.NoError(t, repo.Create(context.Background(), f))

	require.NoError(t, svc.Desativar(context.Background(), f.ID, true))
	assert.True(t, repo.filiais[f.ID].Ativo, "preview must not change state")
}

func TestFilialDesativarJaInativa(t *testing.T) {
	repo := newMemFilialRepo()
	svc := NewFilialService(repo)

	f := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: false}
	require.NoError(t, repo.Create(context.Background(), f))

	err := svc.Desativar(context.Background(), f.ID, false)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)
}

func TestFilialReativar(t *testing.T) {
	repo := newMemFilialRepo()
	svc := NewFilialService(repo)

	f := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: false}
	require.NoError(t, repo.Create(context.Background(), f))

	require.NoError(t, svc.Reativar(context.Background(), f.ID))
	assert.True(t, repo.filiais[f.ID].Ativo)

	err := svc.Reativar(context.Background(), f.ID)
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)
}

func TestFilialAtualizarAtivoPassaPelosGuards(t *testing.T) {
	repo := newMemFilialRepo()
	svc := NewFilialService(repo)

	f := &model.Filial{Nome: "Matriz", Cidade: "Sao Paulo", Ativo: true}
	require.NoError(t, repo.Create(context.Background(), f))
	repo.bloqueantes = []model.Ferramenta{{ID: uuid.New(), Nome: "Furadeira", Estado: model.EstadoEmprestada}}

	inativo := false
	_, err := svc.Atualizar(context.Background(), f.ID, dto.AtualizarFilialRequest{Ativo: &inativo})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeBlocked, apierror.From(err).Code)
}
