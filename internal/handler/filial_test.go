package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
)

// stubFilialService answers from canned data so the handler layer can be
// exercised without repositories.
type stubFilialService struct {
	filiais       []dto.FilialResponse
	bloqueio      *apierror.Error
	desativadas   []uuid.UUID
	ultimaPreview bool
	ultimaLista   dto.ListQuery
	listagens     int
}

func (s *stubFilialService) Criar(_ context.Context, req dto.CriarFilialRequest) (*dto.FilialResponse, error) {
	f := dto.FilialResponse{ID: uuid.NewString(), Nome: req.Nome, Cidade: req.Cidade, Ativo: true}
	s.filiais = append(s.filiais, f)
	return &f, nil
}

func (s *stubFilialService) ObterPorID(_ context.Context, id uuid.UUID) (*dto.FilialResponse, error) {
	for _, f := range s.filiais {
		if f.ID == id.String() {
			return &f, nil
		}
	}
	return nil, apierror.New(apierror.CodeNotFound, "Filial nao encontrada")
}

func (s *stubFilialService) Listar(_ context.Context, lq dto.ListQuery) ([]dto.FilialResponse, int64, error) {
	s.ultimaLista = lq
	s.listagens++
	start := (lq.Page - 1) * lq.Limit
	end := start + lq.Limit
	if start > len(s.filiais) {
		start = len(s.filiais)
	}
	if end > len(s.filiais) {
		end = len(s.filiais)
	}
	return s.filiais[start:end], int64(len(s.filiais)), nil
}

func (s *stubFilialService) Atualizar(_ context.Context, id uuid.UUID, req dto.AtualizarFilialRequest) (*dto.FilialResponse, error) {
	return s.ObterPorID(context.Background(), id)
}

func (s *stubFilialService) Desativar(_ context.Context, id uuid.UUID, preview bool) error {
	s.ultimaPreview = preview
	if s.bloqueio != nil {
		return s.bloqueio
	}
	if !preview {
		s.desativadas = append(s.desativadas, id)
	}
	return nil
}

func (s *stubFilialService) Reativar(_ context.Context, id uuid.UUID) error { return nil }

func testRouter(svc *stubFilialService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{BaseURL: "http://api.test", PageSize: 20}
	h := NewFilialHandler(svc, validator.New(), cfg)
	r := gin.New()
	g := r.Group("/api/filiais")
	g.POST("/", h.Criar)
	g.GET("/", h.Listar)
	g.GET("/:id/", h.Obter)
	g.PATCH("/:id/", h.Atualizar)
	g.PATCH("/:id/desativar/", h.Desativar)
	g.PATCH("/:id/reativar/", h.Reativar)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFilialCriar(t *testing.T) {
	svc := &stubFilialService{}
	r := testRouter(svc)

	w := doJSON(r, http.MethodPost, "/api/filiais/", dto.CriarFilialRequest{Nome: "Matriz", Cidade: "Curitiba"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.FilialResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Matriz", resp.Nome)
	assert.True(t, resp.Ativo)
}

func TestFilialCriarValidacao(t *testing.T) {
	r := testRouter(&stubFilialService{})

	w := doJSON(r, http.MethodPost, "/api/filiais/", dto.CriarFilialRequest{Nome: "M"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp apierror.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierror.CodeValidation, resp.Code)
	assert.Equal(t, "min", resp.Fields["nome"])
	assert.Equal(t, "required", resp.Fields["cidade"])
}

func TestFilialListarNextURL(t *testing.T) {
	svc := &stubFilialService{}
	for i := 0; i < 45; i++ {
		svc.filiais = append(svc.filiais, dto.FilialResponse{ID: uuid.NewString(), Nome: fmt.Sprintf("Filial %02d", i)})
	}
	r := testRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/filiais/?search=fil", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page dto.Pagina[dto.FilialResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Results, 20)
	require.NotNil(t, page.Next)
	// Absolute, pointing at page 2, keeping the search filter.
	assert.Contains(t, *page.Next, "http://api.test/api/filiais/")
	assert.Contains(t, *page.Next, "page=2")
	assert.Contains(t, *page.Next, "search=fil")

	// Last page: null next.
	w = doJSON(r, http.MethodGet, "/api/filiais/?page=3", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Results, 5)
	assert.Nil(t, page.Next)
}

func TestFilialDesativarPreviewBloqueada(t *testing.T) {
	svc := &stubFilialService{
		bloqueio: apierror.Blocked("Filial possui depositos ativos", []apierror.BlockingItem{
			{ID: uuid.NewString(), Nome: "Deposito Central", Estado: "ATIVO"},
		}),
	}
	r := testRouter(svc)

	w := doJSON(r, http.MethodPatch, "/api/filiais/"+uuid.NewString()+"/desativar/?preview=true", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierror.Error
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apierror.CodeBlocked, resp.Code)
	require.Len(t, resp.Blocking, 1)
	assert.Equal(t, "Deposito Central", resp.Blocking[0].Nome)
	assert.True(t, svc.ultimaPreview)
	assert.Empty(t, svc.desativadas)
}

func TestFilialDesativarAplica(t *testing.T) {
	svc := &stubFilialService{}
	r := testRouter(svc)
	id := uuid.New()

	w := doJSON(r, http.MethodPatch, "/api/filiais/"+id.String()+"/desativar/", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, svc.desativadas, 1)
	assert.Equal(t, id, svc.desativadas[0])
}

func TestFilialIDInvalido(t *testing.T) {
	r := testRouter(&stubFilialService{})

	w := doJSON(r, http.MethodGet, "/api/filiais/nao-uuid/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
