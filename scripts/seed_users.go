package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/abisalde/inventory-service/internal/auth/repository"
	"github.com/abisalde/inventory-service/internal/configs"
	"github.com/abisalde/inventory-service/internal/database"
	"github.com/abisalde/inventory-service/internal/model"
	"github.com/abisalde/inventory-service/pkg/password"
	"go.uber.org/zap"
)

type MockUser struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	State     string
	Zip       string
	Status    model.UserStatus
	Role      model.UserRole
}

var mockUsers = []MockUser{
	{
		Email: "admin.user@example.com", Username: "adminuser", FirstName: "Admin", LastName: "User",
		Phone: "2025550100", Address: "789 Admin Blvd", City: "Washington", State: "DC", Zip: "20001",
		Status: model.UserStatusActive, Role: model.UserRoleAdmin,
	},
	{
		Email: "john.doe@example.com", Username: "johndoe", FirstName: "John", LastName: "Doe",
		Phone: "2125550101", Address: "123 Main St", City: "New York", State: "NY", Zip: "10001",
		Status: model.UserStatusActive, Role: model.UserRoleManager,
	},
	{
		Email: "jane.smith@example.com", Username: "janesmith", FirstName: "Jane", LastName: "Smith",
		Phone: "3105550102", Address: "456 Oak Ave", City: "Los Angeles", State: "CA", Zip: "90001",
		Status: model.UserStatusActive, Role: model.UserRoleEmployee,
	},
	{
		Email: "bob.johnson@example.com", Username: "bobjohnson", FirstName: "Bob", LastName: "Johnson",
		Phone: "3125550103", Address: "321 Elm St", City: "Chicago", State: "IL", Zip: "60601",
		Status: model.UserStatusActive, Role: model.UserRoleEmployee,
	},
	{
		Email: "alice.williams@example.com", Username: "alicewilliams", FirstName: "Alice", LastName: "Williams",
		Phone: "7135550104", Address: "654 Maple Dr", City: "Houston", State: "TX", Zip: "77001",
		Status: model.UserStatusPending, Role: model.UserRoleUndecided,
	},
	{
		Email: "charlie.brown@example.com", Username: "charliebrown", FirstName: "Charlie", LastName: "Brown",
		Phone: "6025550105", Address: "987 Pine Rd", City: "Phoenix", State: "AZ", Zip: "85001",
		Status: model.UserStatusInactive, Role: model.UserRoleEmployee,
	},
	{
		Email: "diana.jones@example.com", Username: "dianajones", FirstName: "Diana", LastName: "Jones",
		Phone: "2155550106", Address: "147 Cedar Ln", City: "Philadelphia", State: "PA", Zip: "19101",
		Status: model.UserStatusActive, Role: model.UserRoleUndecided,
	},
	{
		Email: "isaac.taylor@example.com", Username: "isaactaylor", FirstName: "Isaac", LastName: "Taylor",
		Phone: "5125550107", Address: "963 Ash Rd", City: "Austin", State: "TX", Zip: "73301",
		Status: model.UserStatusActive, Role: model.UserRoleManager,
	},
}

func main() {
	ctx := context.Background()

	cfg, err := configs.Load(configs.EnvDevelopment)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.DB.Migrate = true

	db, err := database.Connect(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	users := repository.NewSQLStore(db.SQLDB).Users()
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	defaultPassword := "Password123!"
	hashedPassword, err := hasher.HashPassword(defaultPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	log.Println("🌱 Starting to seed users...")

	successCount := 0
	for _, mockUser := range mockUsers {
		if _, err := users.GetByUsername(ctx, mockUser.Username); err == nil {
			log.Printf("⏭️  %s already exists, skipping", mockUser.Username)
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			log.Fatalf("Failed to look up %s: %v", mockUser.Username, err)
		}

		_, err := users.CreateUser(ctx, &model.User{
			Username:        mockUser.Username,
			PasswordHash:    hashedPassword,
			FirstName:       &mockUser.FirstName,
			LastName:        &mockUser.LastName,
			Phone:           &mockUser.Phone,
			Email:           mockUser.Email,
			Address:         &mockUser.Address,
			City:            &mockUser.City,
			StateCode:       &mockUser.State,
			Zip:             &mockUser.Zip,
			Status:          mockUser.Status,
			Role:            mockUser.Role,
			IsEmailVerified: true,
			CreatedAt:       time.Now().UTC(),
		})
		if err != nil {
			log.Printf("❌ Failed to create %s: %v", mockUser.Username, err)
			continue
		}
		successCount++
		log.Printf("✅ Created %s (%s, %s)", mockUser.Username, mockUser.Status, mockUser.Role)
	}

	log.Printf("🎉 Seeded %d/%d users. Default password: %s", successCount, len(mockUsers), defaultPassword)
}
