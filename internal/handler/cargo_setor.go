package handler

import (
	"net/http"

	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CargoHandler struct {
	svc      service.CargoService
	validate *validator.Validate
	cfg      *config.Config
}

func NewCargoHandler(svc service.CargoService, v *validator.Validate, cfg *config.Config) *CargoHandler {
	return &CargoHandler{svc: svc, validate: v, cfg: cfg}
}

func (h *CargoHandler) Criar(c *gin.Context) {
	req, ok := bindAndValidate[dto.CriarCargoRequest](c, h.validate)
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

func (h *CargoHandler) Listar(c *gin.Context) {
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

func (h *CargoHandler) Obter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CargoHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.AtualizarCargoRequest](c, h.validate)
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

func (h *CargoHandler) Desativar(c *gin.Context) {
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

func (h *CargoHandler) Reativar(c *gin.Context) {
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

type SetorHandler struct {
	svc      service.SetorService
	validate *validator.Validate
	cfg      *config.Config
}

func NewSetorHandler(svc service.SetorService, v *validator.Validate, cfg *config.Config) *SetorHandler {
	return &SetorHandler{svc: svc, validate: v, cfg: cfg}
}

func (h *SetorHandler) Criar(c *gin.Context) {
	req, ok := bindAndValidate[dto.CriarSetorRequest](c, h.validate)
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

func (h *SetorHandler) Listar(c *gin.Context) {
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

func (h *SetorHandler) Obter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SetorHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.AtualizarSetorRequest](c, h.validate)
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

func (h *SetorHandler) Desativar(c *gin.Context) {
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

func (h *SetorHandler) Reativar(c *gin.Context) {
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
