// Command seeduser bootstraps the first MAXIMO account so the API can be
// logged into on a fresh database.
//
//	go run ./cmd/seeduser -cpf 52998224725 -nome "Admin" -senha segredo
package main

import (
	"context"
	"flag"
	"os"

	"github.com/alexhcferreira/toolcare-backend/internal/config"
	"github.com/alexhcferreira/toolcare-backend/internal/infra"
	"github.com/alexhcferreira/toolcare-backend/internal/model"
	"github.com/alexhcferreira/toolcare-backend/internal/repository"
	"github.com/alexhcferreira/toolcare-backend/pkg/cpf"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var (
		nome  = flag.String("nome", "Administrador", "display name")
		doc   = flag.String("cpf", "", "login CPF (required)")
		senha = flag.String("senha", "", "password (required)")
	)
	flag.Parse()

	if *doc == "" || *senha == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !cpf.Valido(*doc) {
		log.Fatal().Str("cpf", *doc).Msg("invalid CPF")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	repo := repository.NewUsuarioRepository(db)
	ctx := context.Background()
	normalizado := cpf.Normalizar(*doc)

	if _, err := repo.FindByCPF(ctx, normalizado); err == nil {
		log.Info().Str("cpf", normalizado).Msg("user already exists, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*senha), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("hash failed")
	}
	u := &model.Usuario{
		Nome:       *nome,
		CPF:        normalizado,
		SenhaHash:  string(hash),
		TipoAcesso: model.AcessoMaximo,
		Ativo:      true,
	}
	if err := repo.Create(ctx, u); err != nil {
		log.Fatal().Err(err).Msg("create failed")
	}
	log.Info().Str("id", u.ID.String()).Str("cpf", normalizado).Msg("MAXIMO user created")
}
