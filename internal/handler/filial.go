package handler

import (
	"net/http"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FilialHandler struct {
	svc      service.FilialService
	validate *validator.Validate
	cfg      *config.Config
}

func NewFilialHandler(svc service.FilialService, v *validator.Validate, cfg *config.Config) *FilialHandler {
	return &FilialHandler{svc: svc, validate: v, cfg: cfg}
}

func (h *FilialHandler) Criar(c *gin.Context) {
	req, ok := bindAndValidate[dto.CriarFilialRequest](c, h.validate)
	if !ok {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), *req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *FilialHandler) Listar(c *gin.Context) {
	lq, ok := bindListQuery(c, h.cfg.PageSize)
	if !ok {
		return
	}
	results, total, err := h.svc.Listar(c.Request.Context(), lq)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagina(c, h.cfg.BaseURL, lq, results, total))
}

func (h *FilialHandler) Obter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !filialVisivel(c, id.String()) {
		respondError(c, apierror.New(apierror.CodeForbidden, "Acesso negado a esta filial"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FilialHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.AtualizarFilialRequest](c, h.validate)
	if !ok {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, *req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FilialHandler) Desativar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), id, previewParam(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FilialHandler) Reativar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reativar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
