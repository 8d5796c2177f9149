package router

import (
	"net/http"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/handler"
	"github.com/alexhcferreira/toolcare-backend/internal/middleware"
	"github.com/alexhcferreira/toolcare-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the route table needs.
type Deps struct {
	Cfg *config.Config

	Auth        *handler.AuthHandler
	Filial      *handler.FilialHandler
	Deposito    *handler.DepositoHandler
	Cargo       *handler.CargoHandler
	Setor       *handler.SetorHandler
	Ferramenta  *handler.FerramentaHandler
	Funcionario *handler.FuncionarioHandler
	Emprestimo  *handler.EmprestimoHandler
	Manutencao  *handler.ManutencaoHandler
	Usuario     *handler.UsuarioHandler
	Dashboard   *handler.DashboardHandler
	Health      *handler.HealthHandler

	// DashboardSvc is invalidated after every successful write.
	DashboardSvc service.DashboardService
}

// New assembles the gin engine with the full route table.
func New(d Deps) *gin.Engine {
	if d.Cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.CORS(d.Cfg.CORSOrigin),
	)

	r.GET("/health", d.Health.Check)
	r.Static("/fotos", d.Cfg.FotoStoragePath)

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(200, time.Minute))

	api.POST("/token/", middleware.LoginRateLimiter(), d.Auth.Token)
	api.POST("/token/refresh/", d.Auth.Refresh)

	autenticado := api.Group("")
	autenticado.Use(middleware.JWTAuth(d.Cfg.JWTSecret), invalidateDashboard(d.DashboardSvc))

	autenticado.GET("/dashboard/", d.Dashboard.Obter)

	crud := func(g *gin.RouterGroup, h interface {
		Criar(*gin.Context)
		Listar(*gin.Context)
		Obter(*gin.Context)
		Atualizar(*gin.Context)
		Desativar(*gin.Context)
		Reativar(*gin.Context)
	}) {
		g.POST("/", h.Criar)
		g.GET("/", h.Listar)
		g.GET("/:id/", h.Obter)
		g.PATCH("/:id/", h.Atualizar)
		g.PATCH("/:id/desativar/", h.Desativar)
		g.PATCH("/:id/reativar/", h.Reativar)
	}

	crud(autenticado.Group("/filiais"), d.Filial)
	crud(autenticado.Group("/depositos"), d.Deposito)
	crud(autenticado.Group("/cargos"), d.Cargo)
	crud(autenticado.Group("/setores"), d.Setor)

	ferramentas := autenticado.Group("/ferramentas")
	crud(ferramentas, d.Ferramenta)
	ferramentas.POST("/:id/foto/", d.Ferramenta.Foto)

	funcionarios := autenticado.Group("/funcionarios")
	crud(funcionarios, d.Funcionario)
	funcionarios.POST("/:id/foto/", d.Funcionario.Foto)

	emprestimos := autenticado.Group("/emprestimos")
	emprestimos.POST("/", d.Emprestimo.Criar)
	emprestimos.GET("/", d.Emprestimo.Listar)
	emprestimos.GET("/:id/", d.Emprestimo.Obter)
	emprestimos.PATCH("/:id/", d.Emprestimo.Atualizar)
	emprestimos.PATCH("/:id/finalizar/", d.Emprestimo.Finalizar)

	manutencoes := autenticado.Group("/manutencoes")
	manutencoes.POST("/", d.Manutencao.Criar)
	manutencoes.GET("/", d.Manutencao.Listar)
	manutencoes.GET("/:id/", d.Manutencao.Obter)
	manutencoes.PATCH("/:id/", d.Manutencao.Atualizar)
	manutencoes.PATCH("/:id/finalizar/", d.Manutencao.Finalizar)

	usuarios := autenticado.Group("/usuarios", middleware.RequireGerenciaUsuarios())
	crud(usuarios, d.Usuario)

	return r
}

// invalidateDashboard drops the cached dashboard aggregates after any
// successful mutating request, keeping the overview coherent with writes.
func invalidateDashboard(svc service.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Request.Method == http.MethodGet {
			return
		}
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			svc.Invalidate(c.Request.Context())
		}
	}
}
