package infra

import (
	"time"

	"github.com/alexhcferreira/toolcare-backend/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the postgres connection, tunes the pool and runs
// migrations.
func NewDatabase(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Filial{},
		&model.Deposito{},
		&model.Cargo{},
		&model.Setor{},
		&model.Ferramenta{},
		&model.Funcionario{},
		&model.Emprestimo{},
		&model.Manutencao{},
		&model.Usuario{},
	); err != nil {
		return err
	}

	// Partial indexes AutoMigrate cannot express. Idempotent by name.
	patches := []string{
		`CREATE INDEX IF NOT EXISTS idx_emprestimos_abertos
			ON emprestimos (funcionario_id) WHERE ativo = true AND data_fim IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_manutencoes_abertas
			ON manutencoes (ferramenta_id) WHERE ativo = true AND data_fim IS NULL`,
	}
	for _, p := range patches {
		if err := db.Exec(p).Error; err != nil {
			log.Warn().Err(err).Msg("migration patch failed")
		}
	}
	return nil
}
