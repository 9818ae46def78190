package dto

import (
	"time"

	"github.com/BruksfildServices01/barber-admin/internal/models"
)

type UserDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type BarberDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Picture     *string `json:"picture"`
	DeletedAt   *string `json:"deletedAt,omitempty"`
}

type BarberServiceDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type AppointmentDTO struct {
	ID                uint             `json:"id"`
	Barber            BarberDTO        `json:"barber"`
	BarberService     BarberServiceDTO `json:"barberService"`
	Datetime          string           `json:"datetime"`
	ClientName        string           `json:"clientName"`
	ClientPhoneNumber string           `json:"clientPhoneNumber"`
}

func User(u models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Role: u.Role}
}

func Barber(b models.Barber) BarberDTO {
	out := BarberDTO{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Picture:     b.Picture,
	}
	if b.DeletedAt != nil {
		s := isoTime(*b.DeletedAt)
		out.DeletedAt = &s
	}
	return out
}

func BarberService(s models.BarberService) BarberServiceDTO {
	return BarberServiceDTO{
		ID:          s.ID,
		Name:        s.Name,
		Price:       s.Price,
		Description: s.Description,
	}
}

func Appointment(a models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:                a.ID,
		Barber:            Barber(a.Barber),
		BarberService:     BarberService(a.BarberService),
		Datetime:          isoTime(a.Datetime),
		ClientName:        a.ClientName,
		ClientPhoneNumber: a.ClientPhoneNumber,
	}
}

// Map converts every element of in with fn.
func Map[M any, D any](in []M, fn func(M) D) []D {
	out := make([]D, 0, len(in))
	for _, m := range in {
		out = append(out, fn(m))
	}
	return out
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
