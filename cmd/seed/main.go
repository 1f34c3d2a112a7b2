package main

import (
	"errors"
	"log"

	"incorporate-run-be/internal/config"
	"incorporate-run-be/internal/model"
	"incorporate-run-be/pkg/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	demoEmail    = "demo@incorporate.run"
	demoPassword = "demo-password"
)

// Seeds one demo owner with a Delaware company, two founders and a starter
// checklist. Running it twice is a no-op.
func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	var existing model.User
	err = db.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		log.Printf("Demo user %s already exists, skipping...", demoEmail)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal("Error: lookup failed:", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := model.User{Id: uuid.New(), Email: demoEmail, PasswordHash: string(hash), FullName: "Demo Owner"}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		company := model.Company{
			Id:           uuid.New(),
			UserId:       user.Id,
			Name:         "Acme Robotics",
			Jurisdiction: "delaware",
			Description:  "Warehouse automation startup",
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		founders := []model.Founder{
			{Id: uuid.New(), CompanyId: company.Id, Email: "ada@acme.test", FirstName: "Ada", LastName: "Lovelace", Role: "CEO", EquityPercentage: 60, Status: "invited"},
			{Id: uuid.New(), CompanyId: company.Id, Email: "alan@acme.test", FirstName: "Alan", LastName: "Turing", Role: "CTO", EquityPercentage: 40, Status: "invited"},
		}
		if err := tx.Create(&founders).Error; err != nil {
			return err
		}

		tasks := []model.Task{
			{Id: uuid.New(), CompanyId: company.Id, Description: "Draft certificate of incorporation", Category: "legal", Status: "pending", AssigneeId: &founders[0].Id},
			{Id: uuid.New(), CompanyId: company.Id, Description: "Sign IP assignment", Category: "legal", Status: "pending", AssigneeId: &founders[1].Id},
			{Id: uuid.New(), CompanyId: company.Id, Description: "Open bank account", Category: "finance", Status: "pending"},
		}
		return tx.Create(&tasks).Error
	})
	if err != nil {
		log.Fatal("Error: seeding failed:", err)
	}

	log.Printf("Seeded demo user %s / %s", demoEmail, demoPassword)
}
