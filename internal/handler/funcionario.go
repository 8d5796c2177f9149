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

type FuncionarioHandler struct {
	svc      service.FuncionarioService
	validate *validator.Validate
	cfg      *config.Config
}

func NewFuncionarioHandler(svc service.FuncionarioService, v *validator.Validate, cfg *config.Config) *FuncionarioHandler {
	return &FuncionarioHandler{svc: svc, validate: v, cfg: cfg}
}

func (h *FuncionarioHandler) Criar(c *gin.Context) {
	req, ok := bindAndValidate[dto.CriarFuncionarioRequest](c, h.validate)
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

func (h *FuncionarioHandler) Listar(c *gin.Context) {
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

func (h *FuncionarioHandler) Obter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	visivel := len(resp.Filiais) == 0
	for _, ref := range resp.Filiais {
		if filialVisivel(c, ref.ID) {
			visivel = true
			break
		}
	}
	if !visivel {
		respondError(c, apierror.New(apierror.CodeForbidden, "Acesso negado a esta filial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *FuncionarioHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	req, ok := bindAndValidate[dto.AtualizarFuncionarioRequest](c, h.validate)
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

func (h *FuncionarioHandler) Foto(c *gin.Context) {
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
	dest := filepath.Join(h.cfg.FotoStoragePath, fmt.Sprintf("funcionario_%s%s", id, ext))
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

func (h *FuncionarioHandler) Desativar(c *gin.Context) {
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

func (h *FuncionarioHandler) Reativar(c *gin.Context) {
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
