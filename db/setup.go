package db

import (
	"github.com/onelife-dev/one-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError lets callers match unique-constraint races with
	// gorm.ErrDuplicatedKey regardless of the dialect.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Space{},
		&models.Project{},
		&models.Task{},
		&models.Habit{},
		&models.HabitLog{},
		&models.Gasto{},
		&models.Presupuesto{},
		&models.Clase{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
