package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/traindesk/traindesk-backend/internal/config"
	"github.com/traindesk/traindesk-backend/internal/domain"
)

func main() {
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", false, "insert sample trainers and course runs")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&domain.Trainer{},
		&domain.CourseRun{},
		&domain.Blockout{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete")

	if *seed {
		if err := seedData(db); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
		log.Println("Seed complete")
	}
}

func seedData(db *gorm.DB) error {
	trainers := []domain.Trainer{
		{UserID: "alice.w", Name: "Alice Wong", Email: "alice@traindesk.example", Role: domain.RoleTrainer},
		{UserID: "ben.t", Name: "Ben Tan", Email: "ben@traindesk.example", Role: domain.RoleTrainer},
		{UserID: "carol.admin", Name: "Carol Lim", Email: "carol@traindesk.example", Role: domain.RoleAdmin},
	}
	for i := range trainers {
		if err := db.Where("user_id = ?", trainers[i].UserID).FirstOrCreate(&trainers[i]).Error; err != nil {
			return err
		}
	}

	runs := []domain.CourseRun{
		{
			TrainerID:   trainers[0].ID,
			CourseTitle: "Workplace Safety Fundamentals",
			StartDate:   domain.NewDate(2024, 3, 11),
			EndDate:     domain.NewDate(2024, 3, 13),
			Status:      domain.RunStatusPublished,
		},
		{
			TrainerID:   trainers[1].ID,
			CourseTitle: "First Aid Refresher",
			StartDate:   domain.NewDate(2024, 4, 2),
			EndDate:     domain.NewDate(2024, 4, 2),
			Status:      domain.RunStatusDraft,
		},
	}
	for i := range runs {
		if err := db.Where("trainer_id = ? AND course_title = ? AND start_date = ?",
			runs[i].TrainerID, runs[i].CourseTitle, runs[i].StartDate).
			FirstOrCreate(&runs[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
