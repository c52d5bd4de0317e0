package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	sessionModel "prepmaster_backend/internals/features/candidate_sessions/model"
	questionModel "prepmaster_backend/internals/features/questions/model"
	examModel "prepmaster_backend/internals/features/tutor_exams/model"
	tutorModel "prepmaster_backend/internals/features/tutors/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=prepmaster&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer (transaction pooling) friendly
	}), &gorm.Config{
		// unique violations surface as gorm.ErrDuplicatedKey,
		// which the admission flow depends on
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connect failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates/updates all feature tables. Called once on boot.
func Migrate() {
	if err := DB.AutoMigrate(
		&tutorModel.TutorProfileModel{},
		&questionModel.QuestionModel{},
		&questionModel.QuestionOptionModel{},
		&examModel.TutorExamModel{},
		&examModel.SubjectWeightModel{},
		&examModel.LockedQuestionModel{},
		&sessionModel.CandidateSessionModel{},
		&sessionModel.CandidateAnswerModel{},
	); err != nil {
		log.Fatalf("[ERROR] migrate failed: %v", err)
	}
	log.Println("[INFO] migration done.")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
