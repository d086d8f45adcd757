package api

import (
	"fmt"
	"log"
	"strings"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const sqlitePrefix = "sqlite:"

// migrateLockID serialises AutoMigrate across replicas on postgres.
const migrateLockID int64 = 20241015

// OpenDatabase picks the driver from the DSN: "sqlite:<path>" opens a sqlite
// file, anything else is handed to postgres.
func OpenDatabase(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, sqlitePrefix) {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix))
	} else {
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock error: %w", err)
		}
		defer func() {
			_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
		}()
	}

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.InvestmentAccount{},
		&domain.Capability{},
		&domain.Transaction{},
		&domain.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Println("migration successful")
	return nil
}
