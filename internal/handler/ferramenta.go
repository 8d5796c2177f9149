package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FerramentaHandler struct {
	svc      service.FerramentaService
	validate *validator.Validate
	cfg      *config.Config
}

func NewFerramentaHandler(svc service.FerramentaService, v *validator.Validate, cfg *config.Config) *FerramentaHandler {
	return &FerramentaHandler{svc: svc, validate: v, cfg: cfg}
}

func (h *FerramentaHandler) Criar(c *gin.Context) {
	req, ok := bindAndValidate[dto.CriarFerramentaRequest](c, h.validate)
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

func (h *FerramentaHandler) Listar(c *gin.Context) {
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

func (h *FerramentaHandler) Obter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !filialVisivel(c, resp.FilialID) {
		respondError(c, apierror.New(apierror.CodeForbidden, "Acesso negado a esta filial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FerramentaHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.AtualizarFerramentaRequest](c, h.validate)
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

// Foto receives a multipart upload and stores it under the configured
// directory, keyed by the tool id.
func (h *FerramentaHandler) Foto(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	file, err := c.FormFile("foto")
	if err != nil {
		respondError(c, apierror.Validation(map[string]string{"foto": "arquivo obrigatorio"}))
		return
	}
	ext := filepath.Ext(file.Filename)
	dest := filepath.Join(h.cfg.FotoStoragePath, fmt.Sprintf("ferramenta_%s%s", id, ext))
	if err := c.SaveUploadedFile(file, dest); err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.AtualizarFoto(c.Request.Context(), id, dest); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FerramentaHandler) Desativar(c *gin.Context) {
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

func (h *FerramentaHandler) Reativar(c *gin.Context) {
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
