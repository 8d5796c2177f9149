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

func setupManutencao(t *testing.T) (*memManutencaoRepo, *memFerramentaRepo, ManutencaoService, *model.Ferramenta) {
	t.Helper()
	repo := newMemManutencaoRepo()
	ferramentas := newMemFerramentaRepo()
	f := &model.Ferramenta{Nome: "Furadeira", NumeroSerie: "FB-001", DepositoID: uuid.New(), Estado: model.EstadoDisponivel}
	require.NoError(t, ferramentas.Create(context.Background(), f))
	return repo, ferramentas, NewManutencaoService(repo, ferramentas), f
}

func TestManutencaoCriarMudaEstadoDaFerramenta(t *testing.T) {
	_, ferramentas, svc, f := setupManutencao(t)

	resp, err := svc.Criar(context.Background(), dto.CriarManutencaoRequest{
		Nome:         "Troca de rolamento",
		FerramentaID: f.ID.String(),
		Tipo:         "CORRETIVA",
		DataInicio:   "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "CORRETIVA", resp.Tipo)
	assert.True(t, resp.Ativo)
	assert.Equal(t, model.EstadoEmManutencao, ferramentas.ferramentas[f.ID].Estado)
}

func TestManutencaoCriarFerramentaIndisponivel(t *testing.T) {
	repo, ferramentas, svc, f := setupManutencao(t)
	ferramentas.ferramentas[f.ID].Estado = model.EstadoEmprestada

	_, err := svc.Criar(context.Background(), dto.CriarManutencaoRequest{
		Nome:         "Revisao",
		FerramentaID: f.ID.String(),
		Tipo:         "PREVENTIVA",
		DataInicio:   "2024-05-01",
	})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)
	assert.Empty(t, repo.manutencoes)
}

func TestManutencaoFinalizarLiberaFerramenta(t *testing.T) {
	_, ferramentas, svc, f := setupManutencao(t)
	criada, err := svc.Criar(context.Background(), dto.CriarManutencaoRequest{
		Nome:         "Revisao",
		FerramentaID: f.ID.String(),
		Tipo:         "PREVENTIVA",
		DataInicio:   "2024-05-01",
	})
	require.NoError(t, err)

	resp, err := svc.Finalizar(context.Background(), uuid.MustParse(criada.ID), dto.FinalizarRequest{DataFim: "2024-05-03"})
	require.NoError(t, err)
	assert.False(t, resp.Ativo)
	assert.Equal(t, model.EstadoDisponivel, ferramentas.ferramentas[f.ID].Estado)

	_, err = svc.Finalizar(context.Background(), uuid.MustParse(criada.ID), dto.FinalizarRequest{DataFim: "2024-05-04"})
	require.Error(t, err)
	assert.Equal(t, apierror.CodeInvalidState, apierror.From(err).Code)
}

func TestManutencaoAtualizarNaoTocaNoTipo(t *testing.T) {
	repo, _, svc, f := setupManutencao(t)
	criada, err := svc.Criar(context.Background(), dto.CriarManutencaoRequest{
		Nome:         "Revisao",
		FerramentaID: f.ID.String(),
		Tipo:         "PREVENTIVA",
		DataInicio:   "2024-05-01",
	})
	require.NoError(t, err)
	id := uuid.MustParse(criada.ID)

	nome := "Revisao geral"
	resp, err := svc.Atualizar(context.Background(), id, dto.AtualizarManutencaoRequest{Nome: &nome})
	require.NoError(t, err)
	assert.Equal(t, "Revisao geral", resp.Nome)
	assert.Equal(t, model.ManutencaoPreventiva, repo.manutencoes[id].Tipo)
}
