package handler

import (
	"net/http"

	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type EmprestimoHandler struct {
	svc      service.EmprestimoService
	validate *validator.Validate
	cfg      *config.Config
}

func NewEmprestimoHandler(svc service.EmprestimoService, v *validator.Validate, cfg *config.Config) *EmprestimoHandler {
	return &EmprestimoHandler{svc: svc, validate: v, cfg: cfg}
}

func (h *EmprestimoHandler) Criar(c *gin.Context) {
	req, ok := bindAndValidate[dto.CriarEmprestimoRequest](c, h.validate)
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

func (h *EmprestimoHandler) Listar(c *gin.Context) {
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

func (h *EmprestimoHandler) Obter(c *gin.Context) {
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

func (h *EmprestimoHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.AtualizarEmprestimoRequest](c, h.validate)
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

// Finalizar closes the loan and releases the tool.
func (h *EmprestimoHandler) Finalizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.FinalizarRequest](c, h.validate)
	if !ok {
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), id, *req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
