package database

import (
	"fmt"
	"log"

	"github.com/samora254/KitabuNew/internal/config"
	"github.com/samora254/KitabuNew/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedCurriculum(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the full schema. Also used by the test
// suite against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Strand{},
		&model.Topic{},
		&model.UserProgress{},
		&model.XPEvent{},
		&model.Flashcard{},
		&model.UserFlashcardProgress{},
		&model.Quiz{},
		&model.QuizQuestion{},
		&model.UserQuizAttempt{},
		&model.HomeworkAssignment{},
		&model.HomeworkQuestion{},
		&model.UserHomeworkSubmission{},
		&model.ChatSession{},
	)
}
