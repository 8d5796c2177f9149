package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
)

// countingServer fails the test if any request arrives.
func countingServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.WriteHeader(http.StatusOK)
	}))
}

func TestEmprestimoDraftRejeitaDatasForaDeOrdemSemRede(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	defer srv.Close()

	draft := EmprestimoDraft{
		Nome:          "Obra 3",
		FerramentaID:  "11111111-1111-1111-1111-111111111111",
		FuncionarioID: "22222222-2222-2222-2222-222222222222",
		DataInicio:    "2026-03-10",
		DataPrevista:  "2026-03-05",
	}
	resp, fields, err := draft.Criar(context.Background(), New(srv.URL))
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "anterior a data de inicio", fields["data_prevista"])
	assert.Zero(t, atomic.LoadInt32(&hits), "nenhuma requisicao deve sair com datas invalidas")
}

func TestEmprestimoDraftExigeCamposObrigatorios(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	defer srv.Close()

	draft := EmprestimoDraft{DataInicio: "10/03/2026"}
	_, fields, err := draft.Criar(context.Background(), New(srv.URL))
	require.NoError(t, err)
	assert.Contains(t, fields, "nome")
	assert.Contains(t, fields, "ferramenta_id")
	assert.Contains(t, fields, "funcionario_id")
	assert.Equal(t, "data invalida", fields["data_inicio"])
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestEmprestimoDraftRejeitaInicioNoFuturo(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	defer srv.Close()

	draft := EmprestimoDraft{
		Nome:          "Obra 3",
		FerramentaID:  "11111111-1111-1111-1111-111111111111",
		FuncionarioID: "22222222-2222-2222-2222-222222222222",
		DataInicio:    time.Now().AddDate(0, 0, 7).Format(time.DateOnly),
	}
	_, fields, err := draft.Criar(context.Background(), New(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "data no futuro", fields["data_inicio"])
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestEmprestimoDraftValidoSubmete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req dto.CriarEmprestimoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Obra 3", req.Nome)
		require.NotNil(t, req.DataPrevista)
		w.Header().Set("Content-Type", "application/json")
		out := dto.EmprestimoResponse{ID: "33333333-3333-3333-3333-333333333333", Nome: req.Nome, Ativo: true}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}))
	defer srv.Close()

	draft := EmprestimoDraft{
		Nome:          "Obra 3",
		FerramentaID:  "11111111-1111-1111-1111-111111111111",
		FuncionarioID: "22222222-2222-2222-2222-222222222222",
		DataInicio:    "2026-03-10",
		DataPrevista:  "2026-03-20",
	}
	resp, fields, err := draft.Criar(context.Background(), New(srv.URL))
	require.NoError(t, err)
	require.Empty(t, fields)
	require.NotNil(t, resp)
	assert.True(t, resp.Ativo)
}

func TestFinalizarEmprestimoRejeitaFimAntesDoInicioSemRede(t *testing.T) {
	var hits int32
	srv := countingServer(t, &hits)
	defer srv.Close()

	emp := &dto.EmprestimoResponse{ID: "33333333-3333-3333-3333-333333333333", DataInicio: "2026-03-10"}
	fields, err := FinalizarEmprestimo(context.Background(), New(srv.URL), emp, "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "anterior a data de inicio", fields["data_fim"])
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestFerramentasDisponiveisFiltraPorDeposito(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/depositos/d1/":
			require.NoError(t, json.NewEncoder(w).Encode(dto.DepositoResponse{
				ID: "d1", Nome: "Central", FilialID: "fi1", Ativo: true,
			}))
		case "/api/ferramentas/":
			assert.Equal(t, "fi1", r.URL.Query().Get("filial"))
			assert.Equal(t, "DISPONIVEL", r.URL.Query().Get("search_value"))
			page := dto.Pagina[dto.FerramentaResponse]{Results: []dto.FerramentaResponse{
				{ID: "f1", Nome: "Furadeira", NumeroSerie: "SN-1", DepositoID: "d1", Estado: "DISPONIVEL"},
				{ID: "f2", Nome: "Serra", NumeroSerie: "SN-2", DepositoID: "d2", Estado: "DISPONIVEL"},
			}}
			require.NoError(t, json.NewEncoder(w).Encode(page))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	opts, err := FerramentasDisponiveis(New(srv.URL))(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, opts, 1, "ferramenta de outro deposito nao entra")
	assert.Equal(t, "f1", opts[0].ID)
	assert.Equal(t, "Furadeira (SN-1)", opts[0].Label)
}
