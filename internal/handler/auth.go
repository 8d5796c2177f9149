package handler

import (
	"net/http"

	"github.com/alexhcferreira/toolcare-backend/internal/dto"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	svc      service.AuthService
	validate *validator.Validate
}

func NewAuthHandler(svc service.AuthService, v *validator.Validate) *AuthHandler {
	return &AuthHandler{svc: svc, validate: v}
}

// Token handles POST /api/token/ — CPF + senha in, access/refresh pair out.
func (h *AuthHandler) Token(c *gin.Context) {
	req, ok := bindAndValidate[dto.TokenRequest](c, h.validate)
	if !ok {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), *req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/token/refresh/.
func (h *AuthHandler) Refresh(c *gin.Context) {
	req, ok := bindAndValidate[dto.RefreshRequest](c, h.validate)
	if !ok {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
