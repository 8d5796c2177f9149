package handler

import (
	"net/http"

	"github.com/alexhcferreira/toolcare-backend/internal/apierror"
	"github.com/alexhcferreira/toolcare-backend/internal/middleware"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Obter handles GET /api/dashboard/?filial=. Coordenadores only see branches
// in their assigned set.
func (h *DashboardHandler) Obter(c *gin.Context) {
	filial := c.Query("filial")
	if filial != "" {
		filialID, err := uuid.Parse(filial)
		if err != nil {
			respondError(c, apierror.Validation(map[string]string{"filial": "uuid invalido"}))
			return
		}
		if claims, ok := middleware.GetClaims(c); ok {
			if !claims.TipoAcesso.PodeVerFilial(claims.Filiais, filialID) {
				respondError(c, apierror.New(apierror.CodeForbidden, "Sem acesso a esta filial"))
				return
			}
		}
	}

	resp, err := h.svc.Obter(c.Request.Context(), filial)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
