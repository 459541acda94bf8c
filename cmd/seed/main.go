package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/reusse-app/backend/internal/config"
	"github.com/reusse-app/backend/internal/db"
	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds a handful of demo accounts and a sample request so the app has
// something to show on a fresh local database. Safe to re-run.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Request{},
		&model.Item{},
		&model.Meeting{},
		&model.Message{},
		&model.Notification{},
		&model.Transaction{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	users := []model.User{
		{ID: "seed-seller-1", Email: "camille@example.com", FirstName: "Camille", LastName: "Durand"},
		{ID: "seed-reusse-1", Email: "lea@example.com", FirstName: "Léa", LastName: "Martin"},
		{ID: "seed-admin-1", Email: "admin@example.com", FirstName: "Admin", LastName: "Reusse"},
	}
	for i := range users {
		if err := gdb.Clauses(clause.OnConflict{DoNothing: true}).Create(&users[i]).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].ID, err)
		}
	}

	siret := "12345678900012"
	bio := "Seconde main depuis 2019, spécialisée vêtements femme."
	profiles := []model.Profile{
		{UserID: "seed-seller-1", Role: model.RoleSeller, Status: model.ProfileStatusApproved, PreferredContactMethod: "email"},
		{UserID: "seed-reusse-1", Role: model.RoleReusse, Status: model.ProfileStatusApproved, Bio: &bio, SiretNumber: &siret, PreferredContactMethod: "phone"},
		{UserID: "seed-admin-1", Role: model.RoleAdmin, Status: model.ProfileStatusApproved, PreferredContactMethod: "email"},
	}
	for i := range profiles {
		if err := upsertProfile(gdb, &profiles[i]); err != nil {
			return fmt.Errorf("seed profile %s: %w", profiles[i].UserID, err)
		}
	}

	var count int64
	if err := gdb.Model(&model.Request{}).Where("seller_id = ?", "seed-seller-1").Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		location := "11 rue des Capucins, Lyon"
		estimated := 180.0
		req := model.Request{
			SellerID:        "seed-seller-1",
			ServiceType:     model.ServiceTypeClassic,
			Status:          model.RequestStatusPending,
			ItemCount:       8,
			EstimatedValue:  &estimated,
			MeetingLocation: &location,
		}
		if err := gdb.Create(&req).Error; err != nil {
			return fmt.Errorf("seed request: %w", err)
		}
		log.Printf("seeded request #%d", req.ID)
	}

	log.Printf("seed complete: %d users, %d profiles", len(users), len(profiles))
	return nil
}

func upsertProfile(gdb *gorm.DB, p *model.Profile) error {
	var existing model.Profile
	err := gdb.Where("user_id = ?", p.UserID).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return gdb.Create(p).Error
}
