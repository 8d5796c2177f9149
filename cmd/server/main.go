package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/handler"
	"github.com/alexhcferreira/toolcare-backend/internal/infra"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"
	"github.com/alexhcferreira/toolcare-backend/internal/router"
	"github.com/alexhcferreira/toolcare-backend/internal/service"
	"github.com/alexhcferreira/toolcare-backend/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if err := os.MkdirAll(cfg.FotoStoragePath, 0o755); err != nil {
		log.Fatal().Err(err).Msg("foto storage dir")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		// The API stays up without redis; caching and reminders are off.
		log.Warn().Err(err).Msg("redis unavailable, running degraded")
		rdb = nil
	}

	validate := validator.New()

	filialRepo := repository.NewFilialRepository(db)
	depositoRepo := repository.NewDepositoRepository(db)
	cargoRepo := repository.NewCargoRepository(db)
	setorRepo := repository.NewSetorRepository(db)
	ferramentaRepo := repository.NewFerramentaRepository(db)
	funcionarioRepo := repository.NewFuncionarioRepository(db)
	emprestimoRepo := repository.NewEmprestimoRepository(db)
	manutencaoRepo := repository.NewManutencaoRepository(db)
	usuarioRepo := repository.NewUsuarioRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	authSvc := service.NewAuthService(usuarioRepo, cfg)
	filialSvc := service.NewFilialService(filialRepo)
	depositoSvc := service.NewDepositoService(depositoRepo, filialRepo)
	cargoSvc := service.NewCargoService(cargoRepo)
	setorSvc := service.NewSetorService(setorRepo)
	ferramentaSvc := service.NewFerramentaService(ferramentaRepo, depositoRepo)
	funcionarioSvc := service.NewFuncionarioService(funcionarioRepo, filialRepo, setorRepo, cargoRepo, emprestimoRepo)
	emprestimoSvc := service.NewEmprestimoService(emprestimoRepo, ferramentaRepo, funcionarioRepo)
	manutencaoSvc := service.NewManutencaoService(manutencaoRepo, ferramentaRepo)
	usuarioSvc := service.NewUsuarioService(usuarioRepo, filialRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo, rdb)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if rdb != nil {
		mailer := infra.NewMailer(cfg)
		dispatcher := worker.NewDispatcher(rdb)
		worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.NewLembreteHandler(mailer, cfg.NotifyEmail))
		worker.StartOverdueCron(ctx, emprestimoRepo, dispatcher, 24*time.Hour)
	}

	engine := router.New(router.Deps{
		Cfg:          cfg,
		Auth:         handler.NewAuthHandler(authSvc, validate),
		Filial:       handler.NewFilialHandler(filialSvc, validate, cfg),
		Deposito:     handler.NewDepositoHandler(depositoSvc, validate, cfg),
		Cargo:        handler.NewCargoHandler(cargoSvc, validate, cfg),
		Setor:        handler.NewSetorHandler(setorSvc, validate, cfg),
		Ferramenta:   handler.NewFerramentaHandler(ferramentaSvc, validate, cfg),
		Funcionario:  handler.NewFuncionarioHandler(funcionarioSvc, validate, cfg),
		Emprestimo:   handler.NewEmprestimoHandler(emprestimoSvc, validate, cfg),
		Manutencao:   handler.NewManutencaoHandler(manutencaoSvc, validate, cfg),
		Usuario:      handler.NewUsuarioHandler(usuarioSvc, validate, cfg),
		Dashboard:    handler.NewDashboardHandler(dashboardSvc),
		Health:       handler.NewHealthHandler(db, rdb),
		DashboardSvc: dashboardSvc,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
