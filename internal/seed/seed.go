// Package seed fills an empty database with demo data.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-admin/internal/auth"
	domain "github.com/BruksfildServices01/barber-admin/internal/domain/user"
	"github.com/BruksfildServices01/barber-admin/internal/models"
)

const appointmentCount = 50

type demoUser struct {
	name     string
	password string
	role     domain.Role
}

//nolint:gochecknoglobals
var (
	demoUsers = []demoUser{
		{name: "Admin", password: "qwerty", role: domain.RoleAdmin},
		{name: "Mike", password: "12345678", role: domain.RoleManager},
	}

	demoBarbers = []models.Barber{
		{Name: "Edward", Description: "I like scissors"},
		{Name: "Boy", Description: "Just a boy"},
	}

	demoServices = []models.BarberService{
		{Name: "Haircut", Description: "Just a haircut", Price: "10.00"},
		{Name: "Trim", Description: "Let's make it shorter", Price: "5.00"},
		{Name: "Trim (ultra)", Description: "Trim but with eyes open", Price: "10.00"},
	}

	clientNames  = []string{"John", "Jack", "James"}
	clientPhones = []string{"111111", "222222", "333333"}
)

// Run seeds users, barbers, services and random appointments spread over the
// two weeks around now. A database that already has users is left alone.
func Run(ctx context.Context, db *gorm.DB, now time.Time, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Info("database already seeded", zap.Int64("users", count))
		return nil
	}

	users := make([]models.User, 0, len(demoUsers))
	for _, du := range demoUsers {
		hash, salt, err := auth.HashPassword(du.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", du.name, err)
		}
		users = append(users, models.User{
			Name:         du.name,
			PasswordHash: hash,
			PasswordSalt: salt,
			Role:         string(du.role),
		})
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		barbers := append([]models.Barber(nil), demoBarbers...)
		if err := tx.Create(&barbers).Error; err != nil {
			return fmt.Errorf("create barbers: %w", err)
		}

		services := append([]models.BarberService(nil), demoServices...)
		if err := tx.Create(&services).Error; err != nil {
			return fmt.Errorf("create barber services: %w", err)
		}

		appointments := randomAppointments(barbers, services, now)
		if err := tx.Create(&appointments).Error; err != nil {
			return fmt.Errorf("create appointments: %w", err)
		}

		log.Info("database seeded",
			zap.Int("users", len(users)),
			zap.Int("barbers", len(barbers)),
			zap.Int("services", len(services)),
			zap.Int("appointments", len(appointments)),
		)
		return nil
	})
}

func randomAppointments(barbers []models.Barber, services []models.BarberService, now time.Time) []models.Appointment {
	start := now.Add(-7 * 24 * time.Hour)
	span := int64(14 * 24 * time.Hour)

	out := make([]models.Appointment, 0, appointmentCount)
	for range appointmentCount {
		out = append(out, models.Appointment{
			BarberID:          sample(barbers).ID,
			BarberServiceID:   sample(services).ID,
			Datetime:          start.Add(time.Duration(rand.Int64N(span))).UTC(),
			ClientName:        sample(clientNames),
			ClientPhoneNumber: sample(clientPhones),
		})
	}
	return out
}

func sample[T any](items []T) T {
	return items[rand.IntN(len(items))]
}
