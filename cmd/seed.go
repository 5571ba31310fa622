package cmd

import (
	"context"
	"fmt"
	"time"

	"car-rental/internal/data/entity"
	"car-rental/internal/data/repository"
	"car-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type seedUser struct {
	name     string
	email    string
	password string
	phone    string
	license  string
	role     entity.UserRole
}

var seedUsers = []seedUser{
	{name: "John Doe", email: "john.doe@example.com", password: "password123", phone: "5551234567", license: "DL123456789", role: entity.RoleUser},
	{name: "Admin User", email: "admin@carrental.com", password: "admin123", phone: "5559876543", license: "DL987654321", role: entity.RoleAdmin},
}

func seedCars() []entity.Car {
	image := func(url string) []entity.CarImage {
		return []entity.CarImage{{URL: url, IsMain: true}}
	}

	return []entity.Car{
		{
			Make: "Toyota", Model: "Camry", Year: 2023,
			Type: entity.CarTypeSedan, Transmission: entity.TransmissionAutomatic, FuelType: entity.FuelPetrol,
			SeatingCapacity: 5, PricePerDay: 45,
			Location:     entity.Location{City: "New York", State: "NY", Address: "123 Main St, New York, NY"},
			Features:     []string{"gps", "bluetooth", "air_conditioning", "backup_camera"},
			Images:       image("https://images.unsplash.com/photo-1621007947382-bb3c3994e3fb?auto=format&fit=crop&w=800&q=80"),
			LicensePlate: "NYC123",
		},
		{
			Make: "BMW", Model: "X5", Year: 2023,
			Type: entity.CarTypeSUV, Transmission: entity.TransmissionAutomatic, FuelType: entity.FuelPetrol,
			SeatingCapacity: 7, PricePerDay: 89,
			Location:     entity.Location{City: "Los Angeles", State: "CA", Address: "456 Sunset Blvd, Los Angeles, CA"},
			Features:     []string{"leather_seats", "sunroof", "gps", "bluetooth"},
			Images:       image("https://images.unsplash.com/photo-1555215695-3004980ad54e?auto=format&fit=crop&w=800&q=80"),
			LicensePlate: "LAX456",
		},
		{
			Make: "Honda", Model: "Civic", Year: 2023,
			Type: entity.CarTypeSedan, Transmission: entity.TransmissionManual, FuelType: entity.FuelPetrol,
			SeatingCapacity: 5, PricePerDay: 35,
			Location:     entity.Location{City: "Chicago", State: "IL", Address: "789 Lake Shore Dr, Chicago, IL"},
			Features:     []string{"bluetooth", "air_conditioning"},
			Images:       image("https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?auto=format&fit=crop&w=800&q=80"),
			LicensePlate: "CHI789",
		},
		{
			Make: "Tesla", Model: "Model 3", Year: 2023,
			Type: entity.CarTypeSedan, Transmission: entity.TransmissionAutomatic, FuelType: entity.FuelElectric,
			SeatingCapacity: 5, PricePerDay: 75,
			Location:     entity.Location{City: "San Francisco", State: "CA", Address: "321 Market St, San Francisco, CA"},
			Features:     []string{"gps", "bluetooth", "heated_seats", "sunroof"},
			Images:       image("https://images.unsplash.com/photo-1560958089-b8a1929cea89?auto=format&fit=crop&w=800&q=80"),
			LicensePlate: "SF321",
		},
		{
			Make: "Ford", Model: "Mustang", Year: 2023,
			Type: entity.CarTypeConvertible, Transmission: entity.TransmissionAutomatic, FuelType: entity.FuelPetrol,
			SeatingCapacity: 4, PricePerDay: 95,
			Location:     entity.Location{City: "Miami", State: "FL", Address: "654 Ocean Dr, Miami, FL"},
			Features:     []string{"bluetooth", "heated_seats", "sunroof"},
			Images:       image("https://images.unsplash.com/photo-1584345604476-8ec5e12e42dd?auto=format&fit=crop&w=800&q=80"),
			LicensePlate: "MIA654",
		},
	}
}

// Seed inserts sample users and cars. Rows that already exist are left alone,
// so running it twice is harmless.
func Seed(ctx context.Context, repo *repository.Repository, logger *zap.Logger) error {
	log := logger.With(zap.String("component", "seed"))
	now := time.Now()

	var adminID uuid.UUID
	for _, su := range seedUsers {
		user, err := repo.User.FindByEmail(ctx, su.email)
		if err != nil {
			return fmt.Errorf("find seed user %s: %w", su.email, err)
		}

		if user == nil {
			hash, err := utils.HashPassword(su.password)
			if err != nil {
				return fmt.Errorf("hash seed password: %w", err)
			}

			phone, license := su.phone, su.license
			user = &entity.User{
				Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				Name:          su.name,
				Email:         su.email,
				PasswordHash:  hash,
				Phone:         &phone,
				Role:          su.role,
				LicenseNumber: &license,
				IsActive:      true,
			}
			if err := repo.User.Create(ctx, user); err != nil {
				return fmt.Errorf("create seed user %s: %w", su.email, err)
			}
			log.Info("Seeded user", zap.String("email", su.email), zap.String("role", string(su.role)))
		}

		if user.IsAdmin() {
			adminID = user.ID
		}
	}

	for _, car := range seedCars() {
		existing, err := repo.Car.FindByLicensePlate(ctx, car.LicensePlate)
		if err != nil {
			return fmt.Errorf("find seed car %s: %w", car.LicensePlate, err)
		}
		if existing != nil {
			continue
		}

		car.Base = entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
		car.Condition = entity.ConditionGood
		car.Availability = true
		car.IsActive = true
		car.OwnerID = adminID

		if err := repo.Car.Create(ctx, &car); err != nil {
			return fmt.Errorf("create seed car %s: %w", car.LicensePlate, err)
		}
		log.Info("Seeded car", zap.String("license_plate", car.LicensePlate))
	}

	return nil
}
