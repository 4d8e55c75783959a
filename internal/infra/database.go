package infra

import (
	"fmt"

	"github.com/JPEDROPS092/sistemadecadastro/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial unique index, CHECK constraints).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
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

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a throwaway container database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Produto{},
		&model.Movimento{},
		&model.Caixa{},
		&model.MovimentoCaixa{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot fully
// handle on its own. Each statement uses IF NOT EXISTS semantics so re-running
// on an already-patched DB is safe.
//
// The two constraints here back the application-level checks: the partial
// unique index makes "at most one open register session" hold even under
// concurrent opens, and the CHECK makes negative stock impossible even if a
// code path ever skipped the row lock.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"partial unique index: single open caixa", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uni_caixas_aberto') THEN
    CREATE UNIQUE INDEX uni_caixas_aberto ON caixas ((status)) WHERE status = 'aberto';
  END IF;
END $$`},
		{"check constraint: non-negative stock", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_produtos_qtd_nao_negativa') THEN
    ALTER TABLE produtos ADD CONSTRAINT chk_produtos_qtd_nao_negativa CHECK (qtd >= 0);
  END IF;
END $$`},
		{"check constraint: positive movement quantity", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_movimentos_quantidade_positiva') THEN
    ALTER TABLE movimentos ADD CONSTRAINT chk_movimentos_quantidade_positiva CHECK (quantidade > 0);
  END IF;
END $$`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
