// internal/app/bootstrap/seed.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	groupstore "github.com/sayamjn/SHG/internal/app/store/groups"
	memberstore "github.com/sayamjn/SHG/internal/app/store/members"
	schemestore "github.com/sayamjn/SHG/internal/app/store/schemes"
	"github.com/sayamjn/SHG/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// seedPassword is the login password every demo group gets.
const seedPassword = "password123"

// seedDemoData inserts two demo groups with members and a small scheme
// catalog. It only runs when the groups collection is empty, so restarting
// the server never duplicates data.
func seedDemoData(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase
	groups := groupstore.New(db)
	members := memberstore.New(db, groups, logger)
	schemes := schemestore.New(db)

	n, err := groups.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: count groups: %w", err)
	}
	if n > 0 {
		logger.Info("seed skipped, groups already present", zap.Int64("groups", n))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), appCfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	mus, err := groups.Create(ctx, models.Group{
		Name:          "Mahila Utkarsh Samuh",
		Code:          "MUS001",
		PasswordHash:  string(hash),
		Address:       "Gram Panchayat Office, Shivaji Chowk",
		Country:       "India",
		State:         "Maharashtra",
		District:      "Pune",
		Taluka:        "Haveli",
		Village:       "Wagholi",
		ContactPerson: "Sunita Patil",
		Phone:         "9876543210",
		Email:         "mus001@example.com",
		FormationDate: time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return fmt.Errorf("seed: create group MUS001: %w", err)
	}

	gvm, err := groups.Create(ctx, models.Group{
		Name:          "Gram Vikas Mandal",
		Code:          "GVM002",
		PasswordHash:  string(hash),
		Address:       "Samaj Mandir, Main Road",
		Country:       "India",
		State:         "Maharashtra",
		District:      "Nashik",
		Taluka:        "Dindori",
		Village:       "Vani",
		ContactPerson: "Ramesh Jadhav",
		Phone:         "9765432109",
		FormationDate: time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return fmt.Errorf("seed: create group GVM002: %w", err)
	}

	demoMembers := []models.Member{
		{
			Name: "Sunita Patil", Address: "H.No. 42, Shivaji Chowk", Age: 38,
			Gender: models.GenderFemale, Phone: "9876543210",
			Country: "India", State: "Maharashtra", City: "Wagholi",
			District: "Pune", Taluka: "Haveli",
			GroupID: mus.ID, Role: models.RolePresident, Active: true,
		},
		{
			Name: "Anita Shinde", Address: "H.No. 17, Tukaram Nagar", Age: 32,
			Gender: models.GenderFemale, Phone: "9876501234",
			Country: "India", State: "Maharashtra", City: "Wagholi",
			District: "Pune", Taluka: "Haveli",
			GroupID: mus.ID, Role: models.RoleSecretary, Active: true,
		},
		{
			Name: "Ramesh Jadhav", Address: "Main Road, Vani", Age: 45,
			Gender: models.GenderMale, Phone: "9765432109",
			Country: "India", State: "Maharashtra", City: "Vani",
			District: "Nashik", Taluka: "Dindori",
			GroupID: gvm.ID, Role: models.RolePresident, Active: true,
		},
		{
			Name: "Kavita Jadhav", Address: "Main Road, Vani", Age: 40,
			Gender: models.GenderFemale, Phone: "9765409876",
			Country: "India", State: "Maharashtra", City: "Vani",
			District: "Nashik", Taluka: "Dindori",
			GroupID: gvm.ID, Role: models.RoleTreasurer, Active: true,
		},
	}
	for _, m := range demoMembers {
		if _, err := members.Create(ctx, m); err != nil {
			return fmt.Errorf("seed: create member %s: %w", m.Name, err)
		}
	}

	demoSchemes := []models.Scheme{
		{
			Title:              "Mahila Samridhi Yojana",
			Description:        "Micro-finance scheme for women members of Self-Help Groups.",
			Department:         "Women and Child Development",
			Eligibility:        "Women SHG members with at least six months of regular savings.",
			Benefits:           "Loans up to Rs. 1,40,000 at subsidized interest rates.",
			ApplicationProcess: "Apply through the district Women Development Corporation office with the group's savings record.",
			Tags:               []string{"women", "loan", "micro-finance"},
		},
		{
			Title:              "Deendayal Antyodaya Yojana - NRLM",
			Description:        "National Rural Livelihoods Mission supporting SHG formation, bank linkage and livelihood promotion.",
			Department:         "Rural Development",
			Eligibility:        "Registered Self-Help Groups following the panchasutra of regular meetings and savings.",
			Benefits:           "Revolving fund of Rs. 10,000 to Rs. 15,000 and community investment fund support.",
			ApplicationProcess: "Register the group with the block mission management unit and complete the grading exercise.",
			Tags:               []string{"livelihood", "bank-linkage", "rural"},
		},
		{
			Title:              "Pradhan Mantri Mudra Yojana",
			Description:        "Collateral-free loans for small and micro enterprises run by SHG members.",
			Department:         "Finance",
			Eligibility:        "SHG members running or starting income-generating activities.",
			Benefits:           "Shishu, Kishor and Tarun loans up to Rs. 10 lakh without collateral.",
			ApplicationProcess: "Apply at any bank branch with the enterprise plan and group recommendation letter.",
			Tags:               []string{"loan", "enterprise", "mudra"},
		},
	}
	for _, sc := range demoSchemes {
		if _, err := schemes.Create(ctx, sc); err != nil {
			return fmt.Errorf("seed: create scheme %s: %w", sc.Title, err)
		}
	}

	logger.Info("demo data seeded",
		zap.Int("groups", 2),
		zap.Int("members", len(demoMembers)),
		zap.Int("schemes", len(demoSchemes)))
	return nil
}
