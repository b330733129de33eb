package database

import (
	"log"
	"time"

	"elevatia-backend/shared/config"
	"elevatia-backend/shared/database/models"
	"elevatia-backend/shared/database/models/auth"
	utils "elevatia-backend/shared/utils/auth"

	"github.com/google/uuid"
)

// SeedDatabase seeds the database with initial data
func SeedDatabase() error {
	log.Println("🌱 Checking database seed data...")

	if err := createSuperAdminFromConfig(); err != nil {
		return err
	}

	if err := seedDemoOrganization(); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// createSuperAdminFromConfig ensures the configured super-admin has an
// identity account. The super-admin never gets a partnerAdmins row - its
// role comes from the id comparison in the authorization resolver.
func createSuperAdminFromConfig() error {
	cfg := config.GetConfig()

	if cfg.SuperAdminID == "" {
		log.Println("⚠️ SUPER_ADMIN_ID not set, skipping super admin creation")
		return nil
	}

	superAdminID, err := uuid.Parse(cfg.SuperAdminID)
	if err != nil {
		log.Printf("⚠️ SUPER_ADMIN_ID is not a valid UUID, skipping super admin creation: %v", err)
		return nil
	}

	var existing auth.Account
	if err := DB.First(&existing, "id = ?", superAdminID).Error; err == nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(cfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	account := auth.Account{
		ID:            superAdminID,
		Email:         cfg.SuperAdminEmail,
		Password:      hashedPassword,
		DisplayName:   "Super Admin",
		Status:        "ACTIVE",
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := DB.Create(&account).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin account created: %s", cfg.SuperAdminEmail)
	return nil
}

// seedDemoOrganization creates a demo tenant with one owner account, for
// local development. Skipped when any organization already exists.
func seedDemoOrganization() error {
	var count int64
	if err := DB.Model(&models.Organization{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	org := models.Organization{
		Name:                    "Acme Wellness",
		Slug:                    "acme",
		PrimaryColor:            "#4F46E5",
		Status:                  models.OrgStatusActive,
		Tier:                    models.TierStarter,
		MaxActiveUsers:          models.DefaultMaxActiveUsers(models.TierStarter),
		DefaultCodeDurationDays: 90,
		ContactEmail:            "owner@acme.test",
		ContactName:             "Acme Owner",
		Description:             "Demo partner organization",
		PartnerSince:            now,
	}
	if err := DB.Create(&org).Error; err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword("owner123")
	if err != nil {
		return err
	}

	ownerAccount := auth.Account{
		Email:         "owner@acme.test",
		Password:      hashedPassword,
		DisplayName:   "Acme Owner",
		Status:        "ACTIVE",
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := DB.Create(&ownerAccount).Error; err != nil {
		return err
	}

	owner := models.PartnerAdmin{
		ID:             ownerAccount.ID,
		Email:          ownerAccount.Email,
		OrganizationID: org.ID,
		Role:           models.RoleOwner,
		DisplayName:    ownerAccount.DisplayName,
		CreatedAt:      now,
	}
	if err := DB.Create(&owner).Error; err != nil {
		return err
	}

	log.Printf("✅ Demo organization created: %s (owner: %s)", org.Slug, ownerAccount.Email)
	return nil
}
